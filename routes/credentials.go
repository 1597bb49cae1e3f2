package routes

import (
	"encoding/json"
	"net/http"

	"glitchvid/credentials"
	"glitchvid/logger"
)

// RegisterCredentialsHandler stores storage-backend credentials and returns
// the access key an upload token references them by.
func RegisterCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	credsBody := make(map[string]string)
	if err := json.NewDecoder(r.Body).Decode(&credsBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(credsBody) == 0 {
		http.Error(w, "Empty credentials", http.StatusBadRequest)
		return
	}

	keyString, err := credentials.Store(credsBody)
	if err != nil {
		logger.Errorf("Failed to store credentials: %v", err)
		http.Error(w, "Failed to store credentials", http.StatusInternalServerError)
		return
	}

	response := map[string]string{
		"access_key": keyString,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode credentials response: %v", err)
	}
}
