package glitch

import (
	"math"
	"testing"

	"glitchvid/models"
)

func TestIntensityAtBaseOnly(t *testing.T) {
	p := models.RenderParams{
		DurationSecs:  2,
		FPS:           10,
		BaseIntensity: 2.5,
	}
	sched := NewSchedule(p)

	for i := 0; i < p.FrameCount(); i++ {
		got := sched.IntensityAt(i)
		if got != 2.5 {
			t.Errorf("Frame %d: expected constant intensity 2.5, got %f", i, got)
		}
	}
}

func TestIntensityAtWobble(t *testing.T) {
	p := models.RenderParams{
		DurationSecs:  1,
		FPS:           4,
		BaseIntensity: 5,
		WobbleAmp:     1,
		WobbleFreq1:   1,
	}
	sched := NewSchedule(p)

	// t=0.25 is a quarter period of a 1 Hz sine, so the wobble peaks there.
	got := sched.IntensityAt(1)
	expected := 6.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected intensity %f at wobble peak, got %f", expected, got)
	}

	// t=0 and t=0.5 sit on zero crossings.
	if got := sched.IntensityAt(0); math.Abs(got-5) > 1e-9 {
		t.Errorf("Expected base intensity at t=0, got %f", got)
	}
	if got := sched.IntensityAt(2); math.Abs(got-5) > 1e-9 {
		t.Errorf("Expected base intensity at t=0.5, got %f", got)
	}
}

func TestIntensityAtHeavySegment(t *testing.T) {
	p := models.RenderParams{
		DurationSecs:       4,
		FPS:                1,
		BaseIntensity:      1,
		SecondaryOnsetSecs: 2,
	}
	sched := NewSchedule(p)

	// Before onset the base intensity applies.
	if got := sched.IntensityAt(0); got != 1 {
		t.Errorf("Expected base intensity before onset, got %f", got)
	}
	if got := sched.IntensityAt(1); got != 1 {
		t.Errorf("Expected base intensity before onset, got %f", got)
	}

	// At onset the ramp starts at its floor and rises toward the end.
	atOnset := sched.IntensityAt(2)
	if math.Abs(atOnset-3.0) > 1e-9 {
		t.Errorf("Expected ramp start 3.0 at onset, got %f", atOnset)
	}
	later := sched.IntensityAt(3)
	if later <= atOnset {
		t.Errorf("Expected intensity to rise across the heavy segment, got %f then %f", atOnset, later)
	}
}

func TestIntensityAtZeroOnsetDisablesHeavySegment(t *testing.T) {
	p := models.RenderParams{
		DurationSecs:  2,
		FPS:           2,
		BaseIntensity: 1.5,
	}
	sched := NewSchedule(p)

	for i := 0; i < p.FrameCount(); i++ {
		if got := sched.IntensityAt(i); got != 1.5 {
			t.Errorf("Frame %d: heavy segment should be off, got %f", i, got)
		}
	}
}

func TestIntensityAtClamped(t *testing.T) {
	p := models.RenderParams{
		DurationSecs:  1,
		FPS:           4,
		BaseIntensity: 9,
		WobbleAmp:     5,
		WobbleFreq1:   1,
	}
	sched := NewSchedule(p)

	for i := 0; i < p.FrameCount(); i++ {
		got := sched.IntensityAt(i)
		if got < MinIntensity || got > MaxIntensity {
			t.Errorf("Frame %d: intensity %f outside [%f, %f]", i, got, MinIntensity, MaxIntensity)
		}
	}
}
