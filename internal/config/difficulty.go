package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists every preset in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard): %w", name, ErrInvalid)
	}
}

// ApplyPreset modifies the config based on a difficulty preset. Normal keeps
// the loaded values. The paddle stays centred on the same point when its
// width changes.
func ApplyPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	var ballVelocity, paddleScale float64
	switch preset {
	case DifficultyEasy:
		ballVelocity, paddleScale = cfg.Ball.Velocity-1, 1.3
	case DifficultyHard:
		ballVelocity, paddleScale = cfg.Ball.Velocity+1, 0.8
	default:
		return
	}

	if ballVelocity >= 1 {
		cfg.Ball.Velocity = ballVelocity
	}

	centre := cfg.Paddle.StartX + cfg.Paddle.Width/2
	cfg.Paddle.Width *= paddleScale
	cfg.Paddle.StartX = max(centre-cfg.Paddle.Width/2, 0)
	if right := cfg.Paddle.StartX + cfg.Paddle.Width; right > cfg.World.Width {
		cfg.Paddle.StartX = max(cfg.World.Width-cfg.Paddle.Width, 0)
	}
}
