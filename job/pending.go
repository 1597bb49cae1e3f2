package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"glitchvid/logger"
)

// dirPrefix namespaces glitchvid job directories inside the OS temp dir so
// the startup scan never picks up foreign folders.
const dirPrefix = "glitchvid-"

// State represents the current state of a queued render
type State int

const (
	StatePending State = iota
	StateProcessing
	StateCompleted
	StateFailed
	StateCancelled
)

var (
	pendingJobs []string                              // directory paths with pending renders
	activeJobs  = make(map[string]context.CancelFunc) // hash -> cancel function
	jobStates   = make(map[string]State)              // hash -> state
	mu          sync.RWMutex
)

// Dir returns the job directory path for a given input hash.
func Dir(hash string) string {
	return filepath.Join(os.TempDir(), dirPrefix+hash)
}

// HashFromDir recovers the input hash from a job directory path.
func HashFromDir(dir string) string {
	return strings.TrimPrefix(filepath.Base(dir), dirPrefix)
}

// AddPending adds a job directory to the pending list
func AddPending(dir string) {
	hash := HashFromDir(dir)
	mu.Lock()
	defer mu.Unlock()
	pendingJobs = append(pendingJobs, dir)
	jobStates[hash] = StatePending
}

// RemovePending removes a job directory from the pending list
func RemovePending(dir string) {
	mu.Lock()
	defer mu.Unlock()
	for i, p := range pendingJobs {
		if p == dir {
			pendingJobs = append(pendingJobs[:i], pendingJobs[i+1:]...)
			break
		}
	}
}

// GetPending returns a copy of the pending jobs list
func GetPending() []string {
	mu.RLock()
	defer mu.RUnlock()
	jobs := make([]string, len(pendingJobs))
	copy(jobs, pendingJobs)
	return jobs
}

// Cancel cancels a queued render by hash. Only pending jobs can be cancelled.
func Cancel(hash string) error {
	mu.Lock()
	defer mu.Unlock()

	state, exists := jobStates[hash]
	if !exists {
		return fmt.Errorf("job with hash %s not found", hash)
	}

	switch state {
	case StateCompleted:
		return fmt.Errorf("job with hash %s is already completed", hash)
	case StateFailed:
		return fmt.Errorf("job with hash %s has already failed", hash)
	case StateCancelled:
		return fmt.Errorf("job with hash %s is already cancelled", hash)
	case StateProcessing:
		return fmt.Errorf("job with hash %s is currently processing and cannot be cancelled", hash)
	case StatePending:
		cancel, active := activeJobs[hash]
		if active {
			cancel()
			delete(activeJobs, hash)
		}
		// Drop it from the queue so the processing loop never picks it up.
		for i, p := range pendingJobs {
			if HashFromDir(p) == hash {
				pendingJobs = append(pendingJobs[:i], pendingJobs[i+1:]...)
				os.RemoveAll(p)
				break
			}
		}
		jobStates[hash] = StateCancelled
		return nil
	default:
		return fmt.Errorf("job with hash %s is in unknown state", hash)
	}
}

// GetState returns the current state of a job
func GetState(hash string) (State, bool) {
	mu.RLock()
	defer mu.RUnlock()
	state, exists := jobStates[hash]
	return state, exists
}

// StateName maps a job state onto its API string.
func StateName(s State) string {
	switch s {
	case StatePending:
		return "pending"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ScanForPending scans the temp directory for job folders left over from a
// previous run and re-queues any that still carry an instructions.json.
func ScanForPending() error {
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), dirPrefix) {
			continue
		}
		dirPath := filepath.Join(os.TempDir(), entry.Name())
		instrPath := filepath.Join(dirPath, "instructions.json")
		if _, err := os.Stat(instrPath); err == nil {
			AddPending(dirPath)
		}
	}
	return nil
}

// processOne runs a single job directory through the pipeline and records
// its final state.
func processOne(jobDir string) error {
	hash := HashFromDir(jobDir)

	mu.Lock()
	jobStates[hash] = StateProcessing
	mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())

	mu.Lock()
	activeJobs[hash] = cancel
	mu.Unlock()

	defer func() {
		cancel()
		mu.Lock()
		delete(activeJobs, hash)
		mu.Unlock()
	}()

	err := Process(ctx, jobDir)

	mu.Lock()
	if err != nil {
		if ctx.Err() == context.Canceled {
			jobStates[hash] = StateCancelled
		} else {
			jobStates[hash] = StateFailed
		}
	} else {
		jobStates[hash] = StateCompleted
	}
	mu.Unlock()

	return err
}

// ProcessPending runs in a loop processing pending renders
func ProcessPending() {
	for {
		jobs := GetPending()
		if len(jobs) == 0 {
			time.Sleep(1 * time.Second)
			continue
		}
		logger.Infof("Processing %d pending renders", len(jobs))

		for _, jobDir := range jobs {
			RemovePending(jobDir)
			if err := processOne(jobDir); err != nil {
				logger.Errorf("Failed to process render in %s: %v", jobDir, err)
			} else {
				logger.Infof("Processed render in %s", jobDir)
			}
		}
	}
}
