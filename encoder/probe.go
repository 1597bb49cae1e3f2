package encoder

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"glitchvid/config"
)

// ProbeDuration asks ffprobe for the duration of a rendered file in seconds.
// Used for best-effort verification after encoding.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, config.GetFFprobePath(),
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}
