package success

import (
	"encoding/json"
	"fmt"
	"time"

	"glitchvid/store"
)

// SuccessRecord represents a completed render
type SuccessRecord struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	JobData   string    `json:"job_data"` // JSON string of the render job
	File      string    `json:"file"`     // published filename
}

var kv *store.KV

// Init initializes the success store
func Init(dbPath string) error {
	var err error
	kv, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open success store: %w", err)
	}
	return nil
}

// Close closes the success store
func Close() error {
	if kv != nil {
		return kv.Close()
	}
	return nil
}

// StoreSuccess stores a completed render keyed by the input hash
func StoreSuccess(hash string, jobData interface{}, file string) error {
	if kv == nil {
		return fmt.Errorf("success store not initialized")
	}

	jobJSON, jsonErr := json.Marshal(jobData)
	if jsonErr != nil {
		jobJSON = []byte(fmt.Sprintf("failed to marshal job data: %v", jsonErr))
	}

	record := SuccessRecord{
		Hash:      hash,
		Timestamp: time.Now(),
		JobData:   string(jobJSON),
		File:      file,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal success record: %w", err)
	}
	return kv.Set(hash, data)
}

// GetSuccess retrieves a success record by hash; nil means none stored.
func GetSuccess(hash string) (*SuccessRecord, error) {
	if kv == nil {
		return nil, fmt.Errorf("success store not initialized")
	}

	data, err := kv.Get(hash)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var record SuccessRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal success record: %w", err)
	}
	return &record, nil
}

// DeleteSuccess removes a success record
func DeleteSuccess(hash string) error {
	if kv == nil {
		return fmt.Errorf("success store not initialized")
	}
	return kv.Delete(hash)
}

// ListSuccessRecords returns all success records (for admin/debugging)
func ListSuccessRecords() ([]SuccessRecord, error) {
	if kv == nil {
		return nil, fmt.Errorf("success store not initialized")
	}

	var records []SuccessRecord
	err := kv.Each(func(key string, value []byte) error {
		var record SuccessRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return nil // skip invalid records
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CleanupOldRecords deletes success records older than maxAge.
func CleanupOldRecords(maxAge time.Duration) error {
	if kv == nil {
		return fmt.Errorf("success store not initialized")
	}

	cutoff := time.Now().Add(-maxAge)
	var stale []string
	err := kv.Each(func(key string, value []byte) error {
		var record SuccessRecord
		if err := json.Unmarshal(value, &record); err != nil {
			stale = append(stale, key)
			return nil
		}
		if record.Timestamp.Before(cutoff) {
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, key := range stale {
		if err := kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete stale record %s: %w", key, err)
		}
	}
	return nil
}
