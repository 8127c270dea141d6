package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/config"
)

func TestToneRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	tn := NewTone(880, 60*time.Millisecond, rate)

	samples := make([][2]float64, 512)
	n, ok := tn.Stream(samples)
	if !ok || n != 512 {
		t.Fatalf("Stream() = %d, %v; expected 512, true", n, ok)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Errorf("sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("sample %d: channels differ", i)
		}
	}
	if tn.Err() != nil {
		t.Errorf("expected no error, got %v", tn.Err())
	}
}

func TestToneEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	tn := NewTone(100, 10*time.Millisecond, rate) // 10 samples

	samples := make([][2]float64, 32)
	n, ok := tn.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("first Stream() = %d, %v; expected 10, true", n, ok)
	}

	n, ok = tn.Stream(samples)
	if n != 0 || ok {
		t.Errorf("drained tone should report 0, false; got %d, %v", n, ok)
	}
}

func TestToneDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	tn := NewTone(400, 100*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := tn.Stream(samples)

	peak := func(from, to int) float64 {
		m := 0.0
		for i := from; i < to; i++ {
			m = math.Max(m, math.Abs(samples[i][0]))
		}
		return m
	}

	head := peak(0, n/4)
	tail := peak(3*n/4, n)
	if tail >= head/4 {
		t.Errorf("tone should decay: head peak %f, tail peak %f", head, tail)
	}
}

func TestPlayerLoad(t *testing.T) {
	cfg := config.DefaultArkanoidConfig().Audio
	p := NewPlayer(cfg)

	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := beep.SampleRate(cfg.SampleRate).N(time.Duration(cfg.DurationMS) * time.Millisecond)
	if p.SampleLen() != want {
		t.Errorf("SampleLen() = %d, expected %d", p.SampleLen(), want)
	}
}

func TestPlayerLoadRejectsBadFormat(t *testing.T) {
	cfg := config.DefaultArkanoidConfig().Audio
	cfg.SampleRate = 0

	if err := NewPlayer(cfg).Load(); err == nil {
		t.Error("Load should fail without a sample rate")
	}
}

func TestPlayerNotifyWithoutDevice(t *testing.T) {
	p := NewPlayer(config.DefaultArkanoidConfig().Audio)
	if err := p.Load(); err != nil {
		t.Fatal(err)
	}

	// No speaker was opened; the player counts bounces and stays silent.
	p.Notify(arkanoid.BounceEvent{Source: arkanoid.BouncePaddle})
	p.Notify(arkanoid.GameEndedEvent{Result: arkanoid.PhaseLost})
	p.Notify(arkanoid.BounceEvent{Source: arkanoid.BounceBlock})

	if p.Played() != 2 {
		t.Errorf("Played() = %d, expected 2 bounces", p.Played())
	}
	p.Close()
}

func TestDisabledPlayer(t *testing.T) {
	cfg := config.DefaultArkanoidConfig().Audio
	cfg.Enabled = false
	p := NewPlayer(cfg)

	if p.Enabled() {
		t.Error("player should be disabled")
	}
	if err := p.Load(); err != nil {
		t.Errorf("Load on a disabled player should succeed: %v", err)
	}
	if err := p.Init(); err != nil {
		t.Errorf("Init on a disabled player should succeed: %v", err)
	}
	p.PlayBounce()
	if p.Played() != 0 || p.SampleLen() != 0 {
		t.Error("disabled player should not synthesise or play anything")
	}
}
