package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestKVSetGet(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	if err := kv.Set("alpha", []byte("one")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := kv.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("one")) {
		t.Errorf("Expected 'one', got %q", got)
	}
}

func TestKVGetMissing(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	_, err = kv.Get("nope")
	if err == nil {
		t.Fatal("Expected an error for a missing key")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}

func TestKVDelete(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	if err := kv.Set("gone", []byte("soon")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get("gone"); !IsNotFound(err) {
		t.Errorf("Expected not-found after delete, got %v", err)
	}
}

func TestKVEach(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	expected := map[string]string{"a": "1", "b": "2", "c": "3"}
	for k, v := range expected {
		if err := kv.Set(k, []byte(v)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	seen := make(map[string]string)
	err = kv.Each(func(key string, value []byte) error {
		seen[key] = string(value)
		return nil
	})
	if err != nil {
		t.Fatalf("Each failed: %v", err)
	}

	if len(seen) != len(expected) {
		t.Errorf("Expected %d entries, saw %d", len(expected), len(seen))
	}
	for k, v := range expected {
		if seen[k] != v {
			t.Errorf("Key %s: expected %s, got %s", k, v, seen[k])
		}
	}
}
