// Package audio plays the bounce sound. The sample is synthesised once at
// load time and replayed from memory, so playing it never allocates a
// generator on the game loop.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine oscillator with an exponential decay envelope.
type tone struct {
	freq     float64
	rate     beep.SampleRate
	phase    float64
	position int
	duration int
	decay    float64 // per-second decay constant
}

// NewTone creates a decaying sine wave lasting duration.
func NewTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	secs := duration.Seconds()
	decay := 0.0
	if secs > 0 {
		// Fade to about 1% by the end of the tone.
		decay = math.Log(100) / secs
	}
	return &tone{
		freq:     freq,
		rate:     rate,
		duration: samples,
		decay:    decay,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		elapsed := float64(t.position) / float64(t.rate)
		val := math.Sin(2*math.Pi*t.phase) * math.Exp(-t.decay*elapsed)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase) // Keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly by vol in [0, 1].
// math.Log2(0) is -Inf, so zero volume is rendered silent instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
