package job

import (
	"testing"

	"glitchvid/models"
)

func validParams() models.RenderParams {
	return models.RenderParams{
		DurationSecs:  2,
		FPS:           10,
		BaseIntensity: 2,
		Format:        "mp4",
	}
}

func TestValidateParamsAccepts(t *testing.T) {
	p := validParams()
	if err := ValidateParams(&p); err != nil {
		t.Fatalf("Expected valid params to pass, got %v", err)
	}
}

func TestValidateParamsAppliesDefaults(t *testing.T) {
	p := models.RenderParams{DurationSecs: 2}
	if err := ValidateParams(&p); err != nil {
		t.Fatalf("Expected defaults to make the params valid, got %v", err)
	}
	if p.FPS != 30 {
		t.Errorf("Expected default fps 30, got %d", p.FPS)
	}
	if p.Format != "mp4" {
		t.Errorf("Expected default format mp4, got %s", p.Format)
	}
}

func TestValidateParamsZeroDuration(t *testing.T) {
	p := validParams()
	p.DurationSecs = 0
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for duration=0")
	}

	p = validParams()
	p.DurationSecs = -1
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for negative duration")
	}
}

func TestValidateParamsZeroFPS(t *testing.T) {
	p := validParams()
	p.FPS = -5
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for negative fps")
	}
}

func TestValidateParamsCaps(t *testing.T) {
	p := validParams()
	p.DurationSecs = 3600
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for a duration above the cap")
	}

	p = validParams()
	p.FPS = 500
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for an fps above the cap")
	}
}

func TestValidateParamsIntensityRange(t *testing.T) {
	p := validParams()
	p.BaseIntensity = 11
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for intensity above 10")
	}

	p = validParams()
	p.BaseIntensity = -1
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for negative intensity")
	}
}

func TestValidateParamsNegativeWobble(t *testing.T) {
	p := validParams()
	p.WobbleAmp = -0.5
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for negative wobble amplitude")
	}

	p = validParams()
	p.Sigma = -2
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for negative sigma")
	}
}

func TestValidateParamsUnknownFormat(t *testing.T) {
	p := validParams()
	p.Format = "avi"
	if err := ValidateParams(&p); err == nil {
		t.Error("Expected rejection for an unsupported format")
	}
}

func TestFrameCountRounding(t *testing.T) {
	cases := []struct {
		duration float64
		fps      int
		expected int
	}{
		{2, 10, 20},
		{1.05, 10, 11},
		{0.04, 10, 0},
		{2.5, 3, 8},
	}
	for _, c := range cases {
		p := models.RenderParams{DurationSecs: c.duration, FPS: c.fps}
		if got := p.FrameCount(); got != c.expected {
			t.Errorf("FrameCount(%g, %d): expected %d, got %d", c.duration, c.fps, c.expected, got)
		}
	}
}
