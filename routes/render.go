package routes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"glitchvid/config"
	"glitchvid/job"
	"glitchvid/logger"
	"glitchvid/metrics"
	"glitchvid/models"
	"glitchvid/publishers"
	"glitchvid/resolver"
)

// computeHash computes the SHA256 hex digest of a reader's contents.
func computeHash(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// hashString is computeHash for strings, used when the source is a URL and
// there are no bytes to digest yet.
func hashString(parts ...string) string {
	hash := sha256.New()
	for _, p := range parts {
		hash.Write([]byte(p))
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// saveUpload writes an uploaded part into dir under its original filename
// and returns that filename.
func saveUpload(dir string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		name = "upload"
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return name, nil
}

// newRenderDir creates a private scratch directory for one synchronous
// render. Unlike queued jobs these are not named by input hash: two
// concurrent requests for the same input must never share scratch space or
// delete it out from under each other.
func newRenderDir() (string, error) {
	return os.MkdirTemp("", "glitchvid-render-")
}

// renderSync runs one render to completion inside the request, publishes the
// result to the direct-serve directory, and returns the URL path it is
// reachable at. The scratch directory is removed before returning.
func renderSync(ctx context.Context, imageURL string, upload *multipart.FileHeader, p models.RenderParams) (string, error) {
	var hash string
	if upload != nil {
		file, err := upload.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open uploaded file: %w", err)
		}
		hash, err = computeHash(file)
		file.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
	} else {
		hash = hashString(imageURL, fmt.Sprintf("%+v", p))
	}

	jobDir, err := newRenderDir()
	if err != nil {
		return "", fmt.Errorf("failed to create render directory: %w", err)
	}
	defer os.RemoveAll(jobDir)

	uploadedFile := ""
	if upload != nil {
		var err error
		uploadedFile, err = saveUpload(jobDir, upload)
		if err != nil {
			return "", err
		}
	}

	outputPath, err := job.Render(ctx, jobDir, imageURL, uploadedFile, p)
	if err != nil {
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return "", err
	}

	filename := job.PublishedName(hash, p.Format)
	reader, err := os.Open(outputPath)
	if err != nil {
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("failed to open rendered output: %w", err)
	}
	defer reader.Close()

	accessInfo := map[string]string{
		"filename": filename,
		"folder":   "",
		"baseDir":  config.GetServeDir(),
	}
	if err := publishers.WriteVideo(ctx, accessInfo, reader, "directServe"); err != nil {
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("failed to publish rendered output: %w", err)
	}

	metrics.RendersTotal.WithLabelValues("completed").Inc()
	logger.Infof("Render %s completed, serving at %s", hash, job.ServedPath("", filename))
	return job.ServedPath("", filename), nil
}

// statusForError maps the pipeline error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, resolver.ErrNoSource), errors.Is(err, resolver.ErrDecode):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
