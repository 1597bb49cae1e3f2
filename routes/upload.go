package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"glitchvid/config"
	"glitchvid/job"
	"glitchvid/logger"
	"glitchvid/models"
	"glitchvid/utils"
)

// verifyJWT verifies the bearer token on the request and returns its claims.
func verifyJWT(r *http.Request) (*models.GlitchJWT, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header required")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return nil, fmt.Errorf("invalid authorization header format")
	}

	return utils.VerifyGlitchJWT(token, utils.VerifyConfig{
		SecretKey: []byte(config.GetJWTSecret()),
	})
}

// UploadResponse acknowledges a queued render.
type UploadResponse struct {
	Hash         string `json:"hash"`
	ExpectedFile string `json:"expected_file"`
}

// UploadHandler queues an asynchronous render. The body is a multipart form
// with an "image" file part or an "image_url" field, plus the render
// parameter fields the web form uses. When GLITCHVID_JWT_SECRET is set a
// bearer token is required and its claims select publish backends and the
// completion callback.
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Upload request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var claims *models.GlitchJWT
	if config.GetJWTSecret() != "" {
		var err error
		claims, err = verifyJWT(r)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
			return
		}
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	params := paramsFromForm(r)
	if err := job.ValidateParams(&params); err != nil {
		http.Error(w, fmt.Sprintf("Invalid parameters: %v", err), http.StatusBadRequest)
		return
	}

	imageURL := strings.TrimSpace(r.FormValue("image_url"))

	var hash string
	var uploadName string
	parts := r.MultipartForm.File["image"]

	switch {
	case len(parts) > 0 && parts[0].Size > 0:
		file, err := parts[0].Open()
		if err != nil {
			http.Error(w, "Failed to read uploaded file", http.StatusInternalServerError)
			return
		}
		hash, err = computeHash(file)
		file.Close()
		if err != nil {
			http.Error(w, "Failed to read uploaded file", http.StatusInternalServerError)
			return
		}
	case imageURL != "":
		hash = hashString(imageURL, fmt.Sprintf("%+v", params))
	default:
		http.Error(w, "Provide either an image URL or upload a file", http.StatusBadRequest)
		return
	}

	jobDir := job.Dir(hash)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		http.Error(w, "Failed to create job directory", http.StatusInternalServerError)
		return
	}

	if len(parts) > 0 && parts[0].Size > 0 {
		var err error
		uploadName, err = saveUpload(jobDir, parts[0])
		if err != nil {
			http.Error(w, "Failed to save uploaded file", http.StatusInternalServerError)
			return
		}
	}

	renderJob, err := job.ParseClaimsIntoJob(claims, params)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to resolve publish backends: %v", err), http.StatusBadRequest)
		return
	}
	renderJob.SourceURL = imageURL

	instr := job.Instructions{
		FilePath:     jobDir,
		OriginalFile: uploadName,
		SourceURL:    imageURL,
		Hash:         hash,
		Job:          renderJob,
	}
	if err := job.WriteInstructions(jobDir, instr); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write instructions: %v", err), http.StatusInternalServerError)
		return
	}

	job.AddPending(jobDir)
	logger.Infof("Queued render %s (%d frames, %s)", hash, params.FrameCount(), params.Format)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UploadResponse{
		Hash:         hash,
		ExpectedFile: job.PublishedName(hash, params.Format),
	}); err != nil {
		logger.Errorf("Failed to encode upload response: %v", err)
	}
}
