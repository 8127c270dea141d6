package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

// Journaled is a replay read back from the journal together with the
// constants it was played with.
type Journaled struct {
	ID         int64
	Config     config.ArkanoidConfig
	Difficulty config.DifficultyPreset
	Replay     Replay
	Total      int
	CreatedAt  time.Time
}

// ToRecord prepares a finished recording for the journal. The whole
// configuration is stored so the game can be re-simulated even after the
// defaults change.
func ToRecord(cfg config.ArkanoidConfig, difficulty config.DifficultyPreset, r Replay, total int) (storage.ReplayRecord, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return storage.ReplayRecord{}, fmt.Errorf("replay: encode config: %w", err)
	}
	return storage.ReplayRecord{
		Seed:       r.Seed,
		Difficulty: string(difficulty),
		ConfigYAML: data,
		Result:     r.Outcome.Phase.String(),
		Score:      r.Outcome.Score,
		Total:      total,
		Ticks:      r.Outcome.Ticks,
		Inputs:     r.Inputs,
	}, nil
}

// FromRecord decodes a journal record.
func FromRecord(rec *storage.ReplayRecord) (Journaled, error) {
	cfg, err := config.Parse(rec.ConfigYAML)
	if err != nil {
		return Journaled{}, fmt.Errorf("replay #%d: %w", rec.ID, err)
	}
	phase, err := arkanoid.ParsePhase(rec.Result)
	if err != nil {
		return Journaled{}, fmt.Errorf("replay #%d: %w", rec.ID, err)
	}

	return Journaled{
		ID:         rec.ID,
		Config:     cfg,
		Difficulty: config.DifficultyPreset(rec.Difficulty),
		Replay: Replay{
			Seed:   rec.Seed,
			Inputs: rec.Inputs,
			Outcome: Outcome{
				Phase: phase,
				Score: rec.Score,
				Ticks: rec.Ticks,
			},
		},
		Total:     rec.Total,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Verify re-simulates the journaled game with its own constants.
func (j Journaled) Verify() error {
	return Verify(j.Config.ToGame(), j.Replay)
}
