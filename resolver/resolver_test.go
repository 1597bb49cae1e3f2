package resolver

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

// pngBytes encodes a small solid image for serving in tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(4, 4, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestResolveNoSource(t *testing.T) {
	_, _, err := Resolve("", "", t.TempDir())
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}

	// Whitespace-only URLs count as absent.
	_, _, err = Resolve("   ", "", t.TempDir())
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource for a blank URL, got %v", err)
	}
}

func TestResolveFromURL(t *testing.T) {
	data := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	dir := t.TempDir()
	img, path, err := Resolve(server.URL, "", dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected a 4x4 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("Expected a .png local copy from the content type, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Local copy missing: %v", err)
	}
}

func TestResolveUnreachableURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	dir := t.TempDir()
	_, _, err := Resolve(server.URL, "", dir)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch, got %v", err)
	}

	// No partial output file left behind.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("Failed to read temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files after a failed fetch, found %d", len(entries))
	}
}

func TestResolveNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := Resolve(server.URL, "", t.TempDir())
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch for a 404, got %v", err)
	}
}

func TestResolveUndecodableBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("this is not an image"))
	}))
	defer server.Close()

	_, _, err := Resolve(server.URL, "", t.TempDir())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestResolveFromUpload(t *testing.T) {
	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "input.png")
	if err := os.WriteFile(uploadPath, pngBytes(t), 0644); err != nil {
		t.Fatalf("Failed to write upload: %v", err)
	}

	img, path, err := Resolve("", uploadPath, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if path != uploadPath {
		t.Errorf("Expected the upload path back, got %s", path)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Unexpected image width %d", img.Bounds().Dx())
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/jpeg":      ".jpg",
		"text/html":       ".jpg",
		"IMAGE/PNG":       ".png",
		"image/png; q=.9": ".png",
	}
	for ct, expected := range cases {
		if got := extensionFor(ct); got != expected {
			t.Errorf("extensionFor(%q): expected %s, got %s", ct, expected, got)
		}
	}
}
