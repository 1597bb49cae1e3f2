package routes

import (
	"encoding/json"
	"net/http"

	"glitchvid/logger"
	"glitchvid/success"
)

// SuccessQueryHandler reports a completed render and its published file
func SuccessQueryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hash := r.URL.Query().Get("hash")
	if hash == "" {
		http.Error(w, "hash parameter required", http.StatusBadRequest)
		return
	}

	record, err := success.GetSuccess(hash)
	if err != nil {
		logger.Errorf("Failed to query success for hash %s: %v", hash, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if record == nil {
		response := map[string]interface{}{
			"hash":    hash,
			"status":  "not_found",
			"message": "No completed render recorded for this hash",
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(response)
		return
	}

	response := map[string]interface{}{
		"hash":      record.Hash,
		"status":    "completed",
		"timestamp": record.Timestamp,
		"file":      record.File,
		"job_data":  record.JobData,
	}
	json.NewEncoder(w).Encode(response)
}

// SuccessListHandler lists all completed renders (admin endpoint)
func SuccessListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := success.ListSuccessRecords()
	if err != nil {
		logger.Errorf("Failed to list completed renders: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"renders": records,
		"count":   len(records),
	})
}
