package encoder

import (
	"context"
	"fmt"
	"path/filepath"

	"glitchvid/glitch"
)

// EncodeWebM muxes the frame sequence into a VP9 WebM.
func EncodeWebM(ctx context.Context, framesDir, output string, o EncodeOptions) error {
	return run(ctx, output, WebMArgs(framesDir, output, o))
}

// WebMArgs builds the ffmpeg argument list for the WebM container.
func WebMArgs(framesDir, output string, o EncodeOptions) []string {
	args := []string{
		"-y",
		"-framerate", fmt.Sprint(o.FPS),
		"-i", filepath.Join(framesDir, glitch.FramePattern),
	}
	if filt := TransitionFilter(o); filt != "" {
		args = append(args, "-vf", filt)
	}
	args = append(args,
		"-r", fmt.Sprint(o.FPS),
		"-t", fmt.Sprintf("%.3f", o.DurationSecs),
		"-c:v", "libvpx-vp9",
		"-b:v", "0",
		"-crf", "32",
		"-pix_fmt", "yuv420p",
		output,
	)
	return args
}
