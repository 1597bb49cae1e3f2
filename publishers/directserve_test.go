package publishers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadToDirectServe(t *testing.T) {
	baseDir := t.TempDir()
	accessInfo := map[string]string{
		"baseDir":  baseDir,
		"folder":   "tenant-a",
		"filename": "abc123.mp4",
	}

	err := WriteVideo(context.Background(), accessInfo, strings.NewReader("video bytes"), "directServe")
	if err != nil {
		t.Fatalf("WriteVideo failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(baseDir, "tenant-a", "abc123.mp4"))
	if err != nil {
		t.Fatalf("Published file missing: %v", err)
	}
	if string(data) != "video bytes" {
		t.Errorf("Published content mismatch: %q", data)
	}
}

func TestUploadToDirectServeNoFolder(t *testing.T) {
	baseDir := t.TempDir()
	accessInfo := map[string]string{
		"baseDir":  baseDir,
		"folder":   "",
		"filename": "abc123.mp4",
	}

	err := WriteVideo(context.Background(), accessInfo, strings.NewReader("x"), "directServe")
	if err != nil {
		t.Fatalf("WriteVideo failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(baseDir, "abc123.mp4")); err != nil {
		t.Errorf("Expected the file at the serve root: %v", err)
	}
}

func TestWriteVideoUnknownBackend(t *testing.T) {
	err := WriteVideo(context.Background(), nil, strings.NewReader("x"), "carrier-pigeon")
	if err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}
