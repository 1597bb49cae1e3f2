package publishers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"glitchvid/logger"
)

// UploadToDirectServe writes a rendered video into the local serve directory,
// where it is hosted under /files/ by the HTTP server. accessInfo keys:
// baseDir (serve root), folder (optional subdir), filename.
func UploadToDirectServe(ctx context.Context, accessInfo map[string]string, reader io.Reader) error {
	baseDir := accessInfo["baseDir"]
	folder := accessInfo["folder"]
	filename := accessInfo["filename"]

	fullDir := filepath.Join(baseDir, folder)
	fullPath := filepath.Join(fullDir, filename)

	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", fullPath, err)
	}

	logger.Infof("Saved rendered video '%s' to '%s'", filename, fullPath)
	return nil
}
