package models

import "math"

// RenderParams carries the tunables of one glitch render. Field order mirrors
// the positional argument list of the prediction endpoint:
// [image_url, image_file, duration, fps, base, glitch2_secs,
//  wobble_amp, wobble_jitter, wobble_f1, wobble_f2, sigma]
type RenderParams struct {
	DurationSecs       float64 `json:"duration_secs"`
	FPS                int     `json:"fps"`
	BaseIntensity      float64 `json:"base_intensity"`       // 0..10 glitch amount
	SecondaryOnsetSecs float64 `json:"secondary_onset_secs"` // heavy segment start, 0 = off
	WobbleAmp          float64 `json:"wobble_amp"`
	WobbleJitter       float64 `json:"wobble_jitter"`
	WobbleFreq1        float64 `json:"wobble_freq1"` // Hz
	WobbleFreq2        float64 `json:"wobble_freq2"` // Hz
	Sigma              float64 `json:"sigma"`        // transition blur sigma
	Format             string  `json:"format"`       // output container, default mp4
}

// DefaultParams returns the parameter set the web form starts from.
func DefaultParams() RenderParams {
	return RenderParams{
		DurationSecs:  5,
		FPS:           30,
		BaseIntensity: 2.0,
		WobbleFreq1:   1.0,
		WobbleFreq2:   1.0,
		Format:        "mp4",
	}
}

// ApplyDefaults fills zero-valued optional fields. Duration stays untouched:
// it is required and validated separately.
func (p *RenderParams) ApplyDefaults() {
	if p.FPS == 0 {
		p.FPS = 30
	}
	if p.BaseIntensity == 0 {
		p.BaseIntensity = 2.0
	}
	if p.WobbleFreq1 == 0 {
		p.WobbleFreq1 = 1.0
	}
	if p.WobbleFreq2 == 0 {
		p.WobbleFreq2 = 1.0
	}
	if p.Format == "" {
		p.Format = "mp4"
	}
}

// FrameCount is the number of frames a render produces: round(duration*fps).
func (p RenderParams) FrameCount() int {
	return int(math.Round(p.DurationSecs * float64(p.FPS)))
}

// PublishJob names a storage backend and the credentials to reach it.
type PublishJob struct {
	Type        string            // "directServe", "s3", "gcs" or "sftp"
	Credentials map[string]string // backend-specific, resolved from the credentials store
}

// RenderJob is the full unit of work for the async pipeline: what to render
// and where the result goes.
type RenderJob struct {
	Params          RenderParams      `json:"params"`
	SourceURL       string            `json:"source_url,omitempty"` // set when the input came from a URL
	PublishJobs     []PublishJob      `json:"publish_jobs"`
	CallbackURL     string            `json:"callback_url,omitempty"`
	CallbackHeaders map[string]string `json:"callback_headers,omitempty"`
	SubDir          string            `json:"sub_dir,omitempty"` // tenant folder under the serve dir
}
