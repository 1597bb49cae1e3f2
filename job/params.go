package job

import (
	"fmt"

	"glitchvid/config"
	"glitchvid/glitch"
	"glitchvid/models"
)

// ValidateParams applies defaults and enforces the render bounds. Everything
// it rejects is an input error the handlers surface as 400.
func ValidateParams(p *models.RenderParams) error {
	p.ApplyDefaults()

	if p.DurationSecs <= 0 {
		return fmt.Errorf("duration must be > 0 seconds")
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if max := config.GetMaxDurationSecs(); p.DurationSecs > max {
		return fmt.Errorf("duration %.2fs exceeds the limit of %.0fs", p.DurationSecs, max)
	}
	if max := config.GetMaxFPS(); p.FPS > max {
		return fmt.Errorf("fps %d exceeds the limit of %d", p.FPS, max)
	}
	if count := p.FrameCount(); count > config.GetMaxFrames() {
		return fmt.Errorf("duration x fps yields %d frames, limit is %d", count, config.GetMaxFrames())
	}
	if p.FrameCount() < 1 {
		return fmt.Errorf("duration x fps yields no frames")
	}

	if p.BaseIntensity < glitch.MinIntensity || p.BaseIntensity > glitch.MaxIntensity {
		return fmt.Errorf("base intensity must be between %g and %g", glitch.MinIntensity, glitch.MaxIntensity)
	}
	if p.SecondaryOnsetSecs < 0 {
		return fmt.Errorf("secondary glitch onset must not be negative")
	}
	if p.WobbleAmp < 0 || p.WobbleJitter < 0 {
		return fmt.Errorf("wobble amplitudes must not be negative")
	}
	if p.WobbleFreq1 < 0 || p.WobbleFreq2 < 0 {
		return fmt.Errorf("wobble frequencies must not be negative")
	}
	if p.Sigma < 0 {
		return fmt.Errorf("sigma must not be negative")
	}

	switch p.Format {
	case "mp4", "webm", "gif":
	default:
		return fmt.Errorf("unsupported output format %q", p.Format)
	}
	return nil
}
