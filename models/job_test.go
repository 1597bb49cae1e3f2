package models

import "testing"

func TestApplyDefaults(t *testing.T) {
	p := RenderParams{DurationSecs: 2}
	p.ApplyDefaults()

	if p.FPS != 30 {
		t.Errorf("Expected default fps 30, got %d", p.FPS)
	}
	if p.BaseIntensity != 2.0 {
		t.Errorf("Expected default intensity 2.0, got %g", p.BaseIntensity)
	}
	if p.WobbleFreq1 != 1.0 || p.WobbleFreq2 != 1.0 {
		t.Errorf("Expected default wobble frequencies 1.0, got %g/%g", p.WobbleFreq1, p.WobbleFreq2)
	}
	if p.Format != "mp4" {
		t.Errorf("Expected default format mp4, got %s", p.Format)
	}
	if p.DurationSecs != 2 {
		t.Errorf("Duration must not be touched, got %g", p.DurationSecs)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	p := RenderParams{DurationSecs: 2, FPS: 12, BaseIntensity: 7, Format: "gif"}
	p.ApplyDefaults()

	if p.FPS != 12 || p.BaseIntensity != 7 || p.Format != "gif" {
		t.Errorf("Explicit values must survive ApplyDefaults, got %+v", p)
	}
}
