package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"glitchvid/job"
	"glitchvid/logger"
)

// JobStatusResponse represents the render status response
type JobStatusResponse struct {
	Hash  string `json:"hash"`
	State string `json:"state"`
}

// JobStatusHandler returns the status of a queued render by hash
func JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Status request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hash := r.URL.Query().Get("hash")
	if hash == "" {
		http.Error(w, "Missing hash parameter", http.StatusBadRequest)
		return
	}

	state, exists := job.GetState(hash)
	if !exists {
		http.Error(w, fmt.Sprintf("Render with hash %s not found", hash), http.StatusNotFound)
		return
	}

	response := JobStatusResponse{
		Hash:  hash,
		State: job.StateName(state),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode status response: %v", err)
	}
}
