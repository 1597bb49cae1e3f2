package encoder

import (
	"context"
	"fmt"
	"path/filepath"

	"glitchvid/glitch"
)

// EncodeMP4 muxes the frame sequence into an H.264 MP4, the default output.
func EncodeMP4(ctx context.Context, framesDir, output string, o EncodeOptions) error {
	return run(ctx, output, MP4Args(framesDir, output, o))
}

// MP4Args builds the ffmpeg argument list for the MP4 container.
func MP4Args(framesDir, output string, o EncodeOptions) []string {
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
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		output,
	)
	return args
}
