package encoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"glitchvid/config"
	"glitchvid/logger"
)

// EncodeFunc assembles the frame sequence in framesDir into output.
type EncodeFunc func(ctx context.Context, framesDir, output string, opts EncodeOptions) error

type EncodeOptions struct {
	FPS          int
	DurationSecs float64
	// Transition styling applied during the first/last half second.
	Sigma        float64 // gaussian blur sigma, 0 disables
	WobbleAmp    float64 // rotation sway amplitude, radians
	WobbleJitter float64
	WobbleFreq1  float64 // Hz
	WobbleFreq2  float64
}

// Registry maps format name → encoder function
var Registry = map[string]EncodeFunc{}

// Register adds an encoder if the underlying command exists, logs status
func Register(format string, cmdName string, fn EncodeFunc) {
	if _, err := exec.LookPath(cmdName); err != nil {
		logger.Warnf("encoder [%s] skipped: command '%s' not found in PATH", format, cmdName)
		return
	}
	Registry[format] = fn
	logger.Debugf("encoder [%s] registered (command: %s)", format, cmdName)
}

// Get looks up an encoder by format
func Get(format string) (EncodeFunc, bool) {
	fn, ok := Registry[format]
	return fn, ok
}

// RegisterDefaults registers the supported output containers. All of them run
// through ffmpeg, so a missing binary disables the whole set.
func RegisterDefaults() {
	ffmpeg := config.GetFFmpegPath()
	Register("mp4", ffmpeg, EncodeMP4)
	Register("webm", ffmpeg, EncodeWebM)
	Register("gif", ffmpeg, EncodeGIF)
}

// Extension returns the file extension for a given output format.
func Extension(format string) string {
	switch format {
	case "webm":
		return "webm"
	case "gif":
		return "gif"
	default:
		return "mp4"
	}
}

// run invokes ffmpeg and surfaces its combined output on failure. Any failure
// also removes a partially written output file.
func run(ctx context.Context, output string, args []string) error {
	cmd := exec.CommandContext(ctx, config.GetFFmpegPath(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(output)
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, string(out))
	}
	if _, err := os.Stat(output); err != nil {
		return fmt.Errorf("ffmpeg exited cleanly but produced no output file: %w", err)
	}
	return nil
}
