package encoder

import (
	"context"
	"fmt"
	"path/filepath"

	"glitchvid/glitch"
)

// EncodeGIF muxes the frame sequence into an animated GIF. A two-pass palette
// inside one filter graph keeps it to a single ffmpeg invocation; the
// transition styling does not apply to GIF output.
func EncodeGIF(ctx context.Context, framesDir, output string, o EncodeOptions) error {
	return run(ctx, output, GIFArgs(framesDir, output, o))
}

// GIFArgs builds the ffmpeg argument list for the GIF container.
func GIFArgs(framesDir, output string, o EncodeOptions) []string {
	return []string{
		"-y",
		"-framerate", fmt.Sprint(o.FPS),
		"-i", filepath.Join(framesDir, glitch.FramePattern),
		"-filter_complex", "[0:v]split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse",
		"-t", fmt.Sprintf("%.3f", o.DurationSecs),
		output,
	}
}
