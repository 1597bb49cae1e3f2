package routes

import (
	"fmt"
	"net/http"
	"strings"

	"glitchvid/job"
	"glitchvid/logger"
)

// CancelJobHandler cancels a pending render by hash
func CancelJobHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Cancel request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hash := r.URL.Query().Get("hash")
	if hash == "" {
		http.Error(w, "Missing hash parameter", http.StatusBadRequest)
		return
	}

	logger.Infof("Attempting to cancel render: %s", hash)
	if err := job.Cancel(hash); err != nil {
		logger.Errorf("Failed to cancel render %s: %v", hash, err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, fmt.Sprintf("Render not found: %v", err), http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Cannot cancel render: %v", err), http.StatusConflict)
		}
		return
	}

	logger.Infof("Render cancelled: %s", hash)
	w.WriteHeader(http.StatusNoContent)
}
