package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// GetDataDir returns the directory where glitchvid keeps its databases.
// Priority: GLITCHVID_DATA_DIR environment variable > "./data" default.
// Checked at runtime so deployments can relocate data without a rebuild.
func GetDataDir() string {
	if dir := os.Getenv("GLITCHVID_DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// GetFailuresDBPath returns the full path to the failures database.
// The failures database tracks renders that failed processing.
// Path: {DATA_DIR}/failures.db
func GetFailuresDBPath() string {
	return filepath.Join(GetDataDir(), "failures.db")
}

// GetSuccessDBPath returns the full path to the success database.
// The success database tracks completed renders and their output files.
// Path: {DATA_DIR}/success.db
func GetSuccessDBPath() string {
	return filepath.Join(GetDataDir(), "success.db")
}

// GetCredentialsDBPath returns the full path to the credentials database.
// The credentials database stores registered storage backend credentials.
// Path: {DATA_DIR}/credentials.db
func GetCredentialsDBPath() string {
	return filepath.Join(GetDataDir(), "credentials.db")
}

// GetServeDir returns the base directory for direct file serving.
// Rendered videos published through the directServe backend land here and are
// served under /files/ by the HTTP server.
// Configurable via GLITCHVID_SERVE_DIR for server administrators.
// Not configurable by end users for security reasons.
func GetServeDir() string {
	if dir := os.Getenv("GLITCHVID_SERVE_DIR"); dir != "" {
		return dir
	}
	return "./serve"
}

// GetPort returns the HTTP listen port. Defaults to 7860.
func GetPort() string {
	if p := os.Getenv("GLITCHVID_PORT"); p != "" {
		return p
	}
	return "7860"
}

// GetFFmpegPath returns the ffmpeg binary to invoke for video assembly.
// Overridable via GLITCHVID_FFMPEG for hosts with a non-PATH install.
func GetFFmpegPath() string {
	if p := os.Getenv("GLITCHVID_FFMPEG"); p != "" {
		return p
	}
	return "ffmpeg"
}

// GetFFprobePath returns the ffprobe binary used to inspect outputs.
func GetFFprobePath() string {
	if p := os.Getenv("GLITCHVID_FFPROBE"); p != "" {
		return p
	}
	return "ffprobe"
}

// GetJWTSecret returns the shared secret for upload-token verification.
// When empty, token auth on the async upload endpoint is disabled.
func GetJWTSecret() string {
	return os.Getenv("GLITCHVID_JWT_SECRET")
}

// Render bounds. A request above any of these is rejected as an input error;
// without them a single request could exhaust disk and CPU.

// GetMaxDurationSecs returns the maximum requested clip duration.
func GetMaxDurationSecs() float64 {
	return envFloat("GLITCHVID_MAX_DURATION_SECS", 30)
}

// GetMaxFPS returns the maximum requested frame rate.
func GetMaxFPS() int {
	return envInt("GLITCHVID_MAX_FPS", 60)
}

// GetMaxFrames caps duration*fps regardless of the individual limits.
func GetMaxFrames() int {
	return envInt("GLITCHVID_MAX_FRAMES", 1800)
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
