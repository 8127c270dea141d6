package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/config"
)

// Player plays a blip for every bounce reported by a session.
// It implements arkanoid.Listener. A disabled player accepts every call and
// stays silent.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	format      beep.Format
	bounce      *beep.Buffer
	mixer       *beep.Mixer
	initialized bool
	played      int
}

// NewPlayer creates a player. Nothing is synthesised or opened until Load
// and Init are called.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		cfg: cfg,
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: 2,
			Precision:   2,
		},
		mixer: &beep.Mixer{},
	}
}

// Enabled reports whether the player makes any sound.
func (p *Player) Enabled() bool {
	return p.cfg.Enabled
}

// Load synthesises the bounce sample into memory.
func (p *Player) Load() error {
	if !p.cfg.Enabled {
		return nil
	}
	if p.cfg.SampleRate <= 0 || p.cfg.DurationMS <= 0 {
		return fmt.Errorf("audio: cannot synthesise %dHz/%dms sample", p.cfg.SampleRate, p.cfg.DurationMS)
	}

	duration := time.Duration(p.cfg.DurationMS) * time.Millisecond
	blip := withVolume(NewTone(p.cfg.Frequency, duration, p.format.SampleRate), p.cfg.Volume)

	buf := beep.NewBuffer(p.format)
	buf.Append(blip)

	p.mu.Lock()
	p.bounce = buf
	p.mu.Unlock()
	return nil
}

// SampleLen returns the length of the loaded bounce sample in frames.
func (p *Player) SampleLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bounce == nil {
		return 0
	}
	return p.bounce.Len()
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	rate := p.format.SampleRate
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Notify implements arkanoid.Listener.
func (p *Player) Notify(e arkanoid.Event) {
	if _, ok := e.(arkanoid.BounceEvent); ok {
		p.PlayBounce()
	}
}

// PlayBounce starts a new copy of the bounce sample without waiting for it.
// Overlapping bounces mix.
func (p *Player) PlayBounce() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bounce == nil {
		return
	}
	p.played++
	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Add(p.bounce.Streamer(0, p.bounce.Len()))
	speaker.Unlock()
}

// Played returns how many bounce sounds were requested after Load.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	// beep has no way to release the device; clearing the mixer silences it.
	p.initialized = false
}
