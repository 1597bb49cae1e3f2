package routes

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"glitchvid/job"
	"glitchvid/logger"
	"glitchvid/models"
)

// PredictRequest is the programmatic render request: a positional argument
// array in the order
// [image_url, image_file, duration, fps, base_intensity, glitch2_secs,
//  wobble_amp, wobble_jitter, wobble_freq1, wobble_freq2, sigma].
type PredictRequest struct {
	Data []interface{} `json:"data"`
}

// PredictResponse carries the URL path of the rendered video.
type PredictResponse struct {
	Data []string `json:"data"`
}

// positionalString reads data[i] as a string, "" when absent or null.
func positionalString(data []interface{}, i int) string {
	if i >= len(data) || data[i] == nil {
		return ""
	}
	s, _ := data[i].(string)
	return s
}

// positionalFloat reads data[i] as a number, 0 when absent or null. JSON
// numbers decode as float64; strings holding numbers are not accepted.
func positionalFloat(data []interface{}, i int) float64 {
	if i >= len(data) || data[i] == nil {
		return 0
	}
	f, _ := data[i].(float64)
	return f
}

// paramsFromPositional maps the positional array onto render parameters and
// the image source fields.
func paramsFromPositional(data []interface{}) (imageURL, imageFile string, p models.RenderParams) {
	imageURL = positionalString(data, 0)
	imageFile = positionalString(data, 1)
	p = models.RenderParams{
		DurationSecs:       positionalFloat(data, 2),
		FPS:                int(positionalFloat(data, 3)),
		BaseIntensity:      positionalFloat(data, 4),
		SecondaryOnsetSecs: positionalFloat(data, 5),
		WobbleAmp:          positionalFloat(data, 6),
		WobbleJitter:       positionalFloat(data, 7),
		WobbleFreq1:        positionalFloat(data, 8),
		WobbleFreq2:        positionalFloat(data, 9),
		Sigma:              positionalFloat(data, 10),
	}
	return imageURL, imageFile, p
}

// PredictHandler runs one render synchronously from a positional argument
// array. The body is either JSON {"data":[...]} or a multipart form with a
// "data" field plus a "files" part when image_file is set to "file".
func PredictHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Predict request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PredictRequest
	var upload *multipart.FileHeader

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("data")), &req.Data); err != nil {
			http.Error(w, "Invalid data field: expected a JSON array", http.StatusBadRequest)
			return
		}
		if parts := r.MultipartForm.File["files"]; len(parts) > 0 {
			upload = parts[0]
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: expected JSON with a data array", http.StatusBadRequest)
			return
		}
	}

	imageURL, imageFile, params := paramsFromPositional(req.Data)

	// image_file set without an actual file part is an input error rather
	// than a silent fallthrough to the URL.
	if imageFile != "" && upload == nil {
		http.Error(w, "image_file given but no file part was uploaded", http.StatusBadRequest)
		return
	}
	if imageFile == "" {
		upload = nil
	}

	if err := job.ValidateParams(&params); err != nil {
		http.Error(w, fmt.Sprintf("Invalid parameters: %v", err), http.StatusBadRequest)
		return
	}

	servedPath, err := renderSync(r.Context(), imageURL, upload, params)
	if err != nil {
		logger.Errorf("Predict render failed: %v", err)
		http.Error(w, fmt.Sprintf("Render failed: %v", err), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PredictResponse{Data: []string{servedPath}}); err != nil {
		logger.Errorf("Failed to encode predict response: %v", err)
	}
}
