package config

import (
	_ "embed"
)

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultArkanoidConfig returns the default configuration. It matches the
// embedded defaults/arkanoid.yaml.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		World: WorldConfig{Width: 640, Height: 360},
		Grid: GridConfig{
			Rows:        4,
			Cols:        8,
			BlockWidth:  60,
			BlockHeight: 20,
			PitchX:      64,
			PitchY:      24,
			OffsetX:     65,
			OffsetY:     35,
		},
		Ball: BallConfig{
			Width:    20,
			Height:   20,
			Velocity: 3,
			StartX:   320,
			StartY:   280,
		},
		Paddle: PaddleConfig{
			Width:    100,
			Height:   14,
			Velocity: 6,
			StartX:   280,
			StartY:   300,
		},
		Loop: LoopConfig{
			TickRate:            60,
			AnimationIntervalMS: 120,
			AnimationFrames:     4,
		},
		Input: InputConfig{ReleaseAfterMS: 300},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Frequency:  880,
			DurationMS: 60,
			Volume:     0.4,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArkanoidYAML
}
