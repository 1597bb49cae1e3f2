package glitch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"glitchvid/logger"
	"glitchvid/models"

	"github.com/disintegration/imaging"
)

// FramePattern is the printf-style name the assembler feeds to ffmpeg.
const FramePattern = "frame_%04d.png"

// WriteFrames renders the full glitched frame sequence for src into dir,
// one PNG per frame, and returns the written paths in order. The sequence is
// produced eagerly since every frame must exist on disk before encoding.
func WriteFrames(ctx context.Context, src image.Image, p models.RenderParams, dir string) ([]string, error) {
	count := p.FrameCount()
	if count < 1 {
		return nil, fmt.Errorf("frame count %d, nothing to render", count)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}

	sched := NewSchedule(p)
	paths := make([]string, 0, count)

	logEvery := count / 10
	if logEvery < 1 {
		logEvery = 1
	}

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("frame generation cancelled: %w", ctx.Err())
		default:
		}

		amt := sched.IntensityAt(i)
		frame := Apply(src, amt, int64(i))

		path := filepath.Join(dir, fmt.Sprintf(FramePattern, i+1))
		if err := imaging.Save(frame, path); err != nil {
			return nil, fmt.Errorf("failed to write frame %d: %w", i+1, err)
		}
		paths = append(paths, path)

		if i%logEvery == 0 {
			logger.Debugf("frame %d/%d amount=%.3f", i+1, count, amt)
		}
	}

	logger.Infof("wrote %d frames to %s", count, dir)
	return paths, nil
}
