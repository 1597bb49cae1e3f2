package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"glitchvid/encoder"
	"glitchvid/glitch"
	"glitchvid/logger"
	"glitchvid/metrics"
	"glitchvid/models"
	"glitchvid/resolver"
)

// OutputFilename is the rendered video's name inside the job's output dir.
func OutputFilename(format string) string {
	return "glitched." + encoder.Extension(format)
}

// Render runs the synchronous pipeline inside jobDir: resolve the input
// image, generate the glitched frame sequence, and assemble the video.
// Exactly one of sourceURL / uploadedFile is expected; uploadedFile is a
// filename relative to jobDir. Returns the path of the rendered video.
// On any failure the frames and partial output are discarded.
func Render(ctx context.Context, jobDir, sourceURL, uploadedFile string, p models.RenderParams) (string, error) {
	metrics.ActiveRenders.Inc()
	defer metrics.ActiveRenders.Dec()

	uploadPath := ""
	if uploadedFile != "" {
		uploadPath = filepath.Join(jobDir, uploadedFile)
	}

	start := time.Now()
	img, srcPath, err := resolver.Resolve(sourceURL, uploadPath, jobDir)
	if err != nil {
		return "", err
	}
	metrics.RenderDuration.WithLabelValues("resolve").Observe(time.Since(start).Seconds())
	logger.Debugf("resolved input %s (%dx%d)", srcPath, img.Bounds().Dx(), img.Bounds().Dy())

	framesDir := filepath.Join(jobDir, "frames")
	defer os.RemoveAll(framesDir)

	start = time.Now()
	frames, err := glitch.WriteFrames(ctx, img, p, framesDir)
	if err != nil {
		return "", err
	}
	metrics.RenderDuration.WithLabelValues("frames").Observe(time.Since(start).Seconds())
	metrics.FramesGeneratedTotal.Add(float64(len(frames)))

	enc, ok := encoder.Get(p.Format)
	if !ok {
		return "", fmt.Errorf("encoder %s not available", p.Format)
	}

	outputDir := filepath.Join(jobDir, "output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, OutputFilename(p.Format))

	opts := encoder.EncodeOptions{
		FPS:          p.FPS,
		DurationSecs: p.DurationSecs,
		Sigma:        p.Sigma,
		WobbleAmp:    p.WobbleAmp,
		WobbleJitter: p.WobbleJitter,
		WobbleFreq1:  p.WobbleFreq1,
		WobbleFreq2:  p.WobbleFreq2,
	}

	start = time.Now()
	if err := enc(ctx, framesDir, outputPath, opts); err != nil {
		return "", fmt.Errorf("encoding failed: %w", err)
	}
	metrics.RenderDuration.WithLabelValues("encode").Observe(time.Since(start).Seconds())

	if dur, err := encoder.ProbeDuration(ctx, outputPath); err != nil {
		logger.Warnf("could not probe rendered output %s: %v", outputPath, err)
	} else {
		logger.Infof("rendered %s: %d frames, %.2fs at %d fps", outputPath, len(frames), dur, p.FPS)
	}

	return outputPath, nil
}
