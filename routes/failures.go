package routes

import (
	"encoding/json"
	"net/http"

	"glitchvid/failures"
	"glitchvid/logger"
)

// FailureQueryHandler reports whether a render failed and why
func FailureQueryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hash := r.URL.Query().Get("hash")
	if hash == "" {
		http.Error(w, "hash parameter required", http.StatusBadRequest)
		return
	}

	record, err := failures.GetFailure(hash)
	if err != nil {
		logger.Errorf("Failed to query failure for hash %s: %v", hash, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if record == nil {
		response := map[string]interface{}{
			"hash":    hash,
			"status":  "success",
			"message": "No failure recorded for this render",
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	response := map[string]interface{}{
		"hash":      record.Hash,
		"status":    "failed",
		"timestamp": record.Timestamp,
		"error":     record.Error,
		"job_data":  record.JobData,
	}
	json.NewEncoder(w).Encode(response)
}

// FailureListHandler lists all recorded failures (admin endpoint)
func FailureListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	failuresList, err := failures.ListFailures()
	if err != nil {
		logger.Errorf("Failed to list failures: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"failures": failuresList,
		"count":    len(failuresList),
	})
}
