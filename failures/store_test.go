package failures

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func initTestStore(t *testing.T) {
	t.Helper()
	if err := Init(filepath.Join(t.TempDir(), "failures.db")); err != nil {
		t.Fatalf("Failed to initialize failure store: %v", err)
	}
	t.Cleanup(func() {
		Close()
		kv = nil
	})
}

func TestFailureStoreRoundTrip(t *testing.T) {
	initTestStore(t)

	testErr := errors.New("encoding failed: ffmpeg exited with status 1")
	jobData := map[string]interface{}{"hash": "abc", "format": "mp4"}

	if err := StoreFailure("abc", testErr, jobData); err != nil {
		t.Fatalf("StoreFailure failed: %v", err)
	}

	record, err := GetFailure("abc")
	if err != nil {
		t.Fatalf("GetFailure failed: %v", err)
	}
	if record == nil {
		t.Fatal("Expected a failure record, got nil")
	}
	if record.Hash != "abc" {
		t.Errorf("Expected hash abc, got %s", record.Hash)
	}
	if record.Error != testErr.Error() {
		t.Errorf("Expected error %q, got %q", testErr.Error(), record.Error)
	}
	if time.Since(record.Timestamp) > time.Minute {
		t.Error("Timestamp should be recent")
	}
}

func TestGetFailureMissing(t *testing.T) {
	initTestStore(t)

	record, err := GetFailure("never-stored")
	if err != nil {
		t.Fatalf("GetFailure failed: %v", err)
	}
	if record != nil {
		t.Error("Expected nil for a hash with no recorded failure")
	}
}

func TestDeleteFailure(t *testing.T) {
	initTestStore(t)

	if err := StoreFailure("gone", errors.New("boom"), nil); err != nil {
		t.Fatalf("StoreFailure failed: %v", err)
	}
	if err := DeleteFailure("gone"); err != nil {
		t.Fatalf("DeleteFailure failed: %v", err)
	}

	record, err := GetFailure("gone")
	if err != nil {
		t.Fatalf("GetFailure failed: %v", err)
	}
	if record != nil {
		t.Error("Expected the record to be deleted")
	}
}

func TestListFailures(t *testing.T) {
	initTestStore(t)

	for _, hash := range []string{"one", "two", "three"} {
		if err := StoreFailure(hash, errors.New("fail "+hash), nil); err != nil {
			t.Fatalf("StoreFailure failed: %v", err)
		}
	}

	records, err := ListFailures()
	if err != nil {
		t.Fatalf("ListFailures failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestUninitializedStore(t *testing.T) {
	kv = nil
	if err := StoreFailure("x", errors.New("y"), nil); err == nil {
		t.Error("Expected an error from an uninitialized store")
	}
	if _, err := GetFailure("x"); err == nil {
		t.Error("Expected an error from an uninitialized store")
	}
}
