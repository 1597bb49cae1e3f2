package resolver

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"glitchvid/logger"

	"github.com/disintegration/imaging"
)

// Error taxonomy for input resolution. Handlers map these onto HTTP statuses.
var (
	ErrNoSource = errors.New("provide either an image URL or upload a file")
	ErrFetch    = errors.New("failed to fetch image URL")
	ErrDecode   = errors.New("could not decode image")
)

var fetchClient = &http.Client{Timeout: 20 * time.Second}

// Resolve turns a request's image source into a decoded raster. Exactly one
// of url / uploadPath is expected to be set; the uploaded file wins when both
// are present, matching the web form's behavior. The returned path is the
// local copy of the source inside dstDir (or uploadPath itself).
func Resolve(url, uploadPath, dstDir string) (image.Image, string, error) {
	srcPath := uploadPath
	if srcPath == "" {
		if strings.TrimSpace(url) == "" {
			return nil, "", ErrNoSource
		}
		var err error
		srcPath, err = Download(strings.TrimSpace(url), dstDir)
		if err != nil {
			return nil, "", err
		}
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, srcPath, nil
}

// Download fetches the image at url into dstDir, naming the file input.<ext>
// with the extension inferred from the response Content-Type.
func Download(url, dstDir string) (string, error) {
	resp, err := fetchClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	dstPath := filepath.Join(dstDir, "input"+extensionFor(resp.Header.Get("Content-Type")))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create download target: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	logger.Debugf("downloaded %d bytes from %s to %s", n, url, dstPath)
	return dstPath, nil
}

// extensionFor maps a response content type onto a file extension,
// defaulting to .jpg for anything unrecognized.
func extensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}
