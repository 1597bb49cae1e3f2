package glitch

import (
	"math"

	"glitchvid/models"
)

// Heavy-segment intensity ramp once the secondary glitch kicks in.
const (
	heavyRampStart = 3.0
	heavyRampEnd   = 5.0
)

// Intensity bounds accepted by Apply.
const (
	MinIntensity = 0.0
	MaxIntensity = 10.0
)

// Schedule derives the per-frame glitch intensity for a render: the base
// amount plus a two-frequency sinusoidal wobble, replaced by a rising heavy
// ramp once t passes the secondary onset.
type Schedule struct {
	params models.RenderParams
}

func NewSchedule(p models.RenderParams) Schedule {
	return Schedule{params: p}
}

// IntensityAt returns the clamped glitch amount for frame index i (t = i/fps).
func (s Schedule) IntensityAt(i int) float64 {
	p := s.params
	t := float64(i) / float64(p.FPS)

	wobble := p.WobbleAmp*math.Sin(2*math.Pi*p.WobbleFreq1*t) +
		p.WobbleJitter*math.Sin(2*math.Pi*p.WobbleFreq2*t)

	amt := p.BaseIntensity + wobble
	if s.heavyAt(t) {
		span := p.DurationSecs - p.SecondaryOnsetSecs
		progress := (t - p.SecondaryOnsetSecs) / span
		amt = heavyRampStart + (heavyRampEnd-heavyRampStart)*progress + wobble
	}

	return clamp(amt, MinIntensity, MaxIntensity)
}

// heavyAt reports whether t falls inside the secondary glitch segment.
// An onset of zero (or past the end) disables the segment.
func (s Schedule) heavyAt(t float64) bool {
	onset := s.params.SecondaryOnsetSecs
	return onset > 0 && onset < s.params.DurationSecs && t >= onset
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
