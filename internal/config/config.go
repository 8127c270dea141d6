// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for the arkanoid game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// ArkanoidConfig contains all configuration for a game session and its host.
type ArkanoidConfig struct {
	World  WorldConfig  `yaml:"world"`
	Grid   GridConfig   `yaml:"grid"`
	Ball   BallConfig   `yaml:"ball"`
	Paddle PaddleConfig `yaml:"paddle"`
	Loop   LoopConfig   `yaml:"loop"`
	Input  InputConfig  `yaml:"input"`
	Audio  AudioConfig  `yaml:"audio"`
}

// WorldConfig defines the playfield size in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GridConfig defines the block grid layout.
type GridConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	BlockWidth  float64 `yaml:"block_width"`
	BlockHeight float64 `yaml:"block_height"`
	PitchX      float64 `yaml:"pitch_x"`
	PitchY      float64 `yaml:"pitch_y"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
}

// BallConfig defines the ball size, speed and docked position.
type BallConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Velocity float64 `yaml:"velocity"`
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
}

// PaddleConfig defines the paddle size, speed and start position.
type PaddleConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Velocity float64 `yaml:"velocity"`
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
}

// LoopConfig defines the host timing.
type LoopConfig struct {
	TickRate            int `yaml:"tick_rate"` // physics ticks per second
	AnimationIntervalMS int `yaml:"animation_interval_ms"`
	AnimationFrames     int `yaml:"animation_frames"`
}

// InputConfig defines keyboard handling.
type InputConfig struct {
	ReleaseAfterMS int `yaml:"release_after_ms"`
}

// AudioConfig defines the synthesised bounce sound.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
}

// ToGame converts the file representation into the constants of a session.
func (c ArkanoidConfig) ToGame() arkanoid.Config {
	return arkanoid.Config{
		World: arkanoid.World{Width: c.World.Width, Height: c.World.Height},
		Grid: arkanoid.GridLayout{
			Rows:    c.Grid.Rows,
			Cols:    c.Grid.Cols,
			BlockW:  c.Grid.BlockWidth,
			BlockH:  c.Grid.BlockHeight,
			PitchX:  c.Grid.PitchX,
			PitchY:  c.Grid.PitchY,
			OriginX: c.Grid.OffsetX,
			OriginY: c.Grid.OffsetY,
		},
		Ball: arkanoid.BallSpec{
			W:        c.Ball.Width,
			H:        c.Ball.Height,
			Velocity: c.Ball.Velocity,
			StartX:   c.Ball.StartX,
			StartY:   c.Ball.StartY,
		},
		Paddle: arkanoid.PaddleSpec{
			W:        c.Paddle.Width,
			H:        c.Paddle.Height,
			Velocity: c.Paddle.Velocity,
			StartX:   c.Paddle.StartX,
			StartY:   c.Paddle.StartY,
		},
		AnimationFrames: c.Loop.AnimationFrames,
	}
}

// TickInterval returns the duration of one physics tick.
func (c ArkanoidConfig) TickInterval() time.Duration {
	if c.Loop.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Loop.TickRate)
}

// AnimationInterval returns the period of the decorative ball animation.
func (c ArkanoidConfig) AnimationInterval() time.Duration {
	return time.Duration(c.Loop.AnimationIntervalMS) * time.Millisecond
}

// ReleaseAfter returns how long a direction key is held after its last repeat.
func (c ArkanoidConfig) ReleaseAfter() time.Duration {
	return time.Duration(c.Input.ReleaseAfterMS) * time.Millisecond
}

// Validate checks that every entity has a positive size and fits the world.
func (c ArkanoidConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}

	w, h := c.World.Width, c.World.Height
	check(w > 0 && h > 0, "world size %vx%v must be positive", w, h)

	g := c.Grid
	check(g.Rows >= 0 && g.Cols >= 0, "grid %dx%d must not be negative", g.Rows, g.Cols)
	check(g.BlockWidth > 0 && g.BlockHeight > 0, "block size %vx%v must be positive", g.BlockWidth, g.BlockHeight)
	if g.Rows > 0 && g.Cols > 0 {
		right := g.OffsetX + g.PitchX*float64(g.Cols-1) + g.BlockWidth
		bottom := g.OffsetY + g.PitchY*float64(g.Rows-1) + g.BlockHeight
		check(g.OffsetX >= 0 && g.OffsetY >= 0 && right <= w && bottom <= h,
			"grid spans (%v,%v)-(%v,%v), outside the world", g.OffsetX, g.OffsetY, right, bottom)
	}

	b := c.Ball
	check(b.Width > 0 && b.Height > 0, "ball size %vx%v must be positive", b.Width, b.Height)
	check(b.Velocity > 0, "ball velocity %v must be positive", b.Velocity)
	check(b.StartX >= 0 && b.StartY >= 0 && b.StartX+b.Width <= w && b.StartY+b.Height <= h,
		"ball start (%v,%v) is outside the world", b.StartX, b.StartY)

	p := c.Paddle
	check(p.Width > 0 && p.Height > 0, "paddle size %vx%v must be positive", p.Width, p.Height)
	check(p.Velocity > 0, "paddle velocity %v must be positive", p.Velocity)
	check(p.StartX >= 0 && p.StartY >= 0 && p.StartX+p.Width <= w && p.StartY+p.Height <= h,
		"paddle start (%v,%v) is outside the world", p.StartX, p.StartY)

	check(c.Loop.TickRate > 0, "tick_rate %d must be positive", c.Loop.TickRate)
	check(c.Loop.AnimationIntervalMS > 0, "animation_interval_ms %d must be positive", c.Loop.AnimationIntervalMS)
	check(c.Loop.AnimationFrames > 0, "animation_frames %d must be positive", c.Loop.AnimationFrames)
	check(c.Input.ReleaseAfterMS > 0, "release_after_ms %d must be positive", c.Input.ReleaseAfterMS)

	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "audio sample_rate %d must be positive", c.Audio.SampleRate)
		check(c.Audio.Frequency > 0, "audio frequency %v must be positive", c.Audio.Frequency)
		check(c.Audio.DurationMS > 0, "audio duration_ms %d must be positive", c.Audio.DurationMS)
		check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume %v must be within [0, 1]", c.Audio.Volume)
	}

	return errors.Join(errs...)
}
