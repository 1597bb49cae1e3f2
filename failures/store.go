package failures

import (
	"encoding/json"
	"fmt"
	"time"

	"glitchvid/store"
)

// FailureRecord represents a render that failed processing
type FailureRecord struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
	JobData   string    `json:"job_data"` // JSON string of the render instructions
}

var kv *store.KV

// Init initializes the failure store
func Init(dbPath string) error {
	var err error
	kv, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open failure store: %w", err)
	}
	return nil
}

// Close closes the failure store
func Close() error {
	if kv != nil {
		return kv.Close()
	}
	return nil
}

// StoreFailure stores a render failure keyed by the input hash
func StoreFailure(hash string, failure error, jobData interface{}) error {
	if kv == nil {
		return fmt.Errorf("failure store not initialized")
	}

	jobJSON, jsonErr := json.Marshal(jobData)
	if jsonErr != nil {
		jobJSON = []byte(fmt.Sprintf("failed to marshal job data: %v", jsonErr))
	}

	record := FailureRecord{
		Hash:      hash,
		Timestamp: time.Now(),
		Error:     failure.Error(),
		JobData:   string(jobJSON),
	}

	data, jsonErr := json.Marshal(record)
	if jsonErr != nil {
		return fmt.Errorf("failed to marshal failure record: %w", jsonErr)
	}
	return kv.Set(hash, data)
}

// GetFailure retrieves a failure record by hash; nil means no failure stored.
func GetFailure(hash string) (*FailureRecord, error) {
	if kv == nil {
		return nil, fmt.Errorf("failure store not initialized")
	}

	data, err := kv.Get(hash)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get failure: %w", err)
	}

	var record FailureRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failure record: %w", err)
	}
	return &record, nil
}

// DeleteFailure removes a failure record
func DeleteFailure(hash string) error {
	if kv == nil {
		return fmt.Errorf("failure store not initialized")
	}
	return kv.Delete(hash)
}

// ListFailures returns all failure records (for admin purposes)
func ListFailures() ([]FailureRecord, error) {
	if kv == nil {
		return nil, fmt.Errorf("failure store not initialized")
	}

	var records []FailureRecord
	err := kv.Each(func(key string, value []byte) error {
		var record FailureRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return nil // skip invalid records
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iteration error: %w", err)
	}
	return records, nil
}

// CleanupOldRecords deletes failure records older than maxAge.
func CleanupOldRecords(maxAge time.Duration) error {
	if kv == nil {
		return fmt.Errorf("failure store not initialized")
	}

	cutoff := time.Now().Add(-maxAge)
	var stale []string
	err := kv.Each(func(key string, value []byte) error {
		var record FailureRecord
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
