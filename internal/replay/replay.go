// Package replay records the intents applied to a session and re-runs them
// deterministically. A session is fully determined by its constants, its
// seed and the tick-stamped intents, so a replay never stores positions.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/core"
)

var (
	// ErrMismatch is returned by Verify when a re-simulation ends differently
	// from the recorded outcome.
	ErrMismatch = errors.New("replay mismatch")
	// ErrUnordered is returned when input events are not sorted by tick.
	ErrUnordered = errors.New("replay inputs out of order")
)

// Outcome is how a session ended.
type Outcome struct {
	Phase arkanoid.Phase
	Score int
	Ticks uint64
}

// Replay is everything needed to reproduce a session with known constants.
type Replay struct {
	Seed    int64
	Inputs  []core.InputEvent
	Outcome Outcome
}

// Recorder applies intents to a session and remembers them.
type Recorder struct {
	session *arkanoid.Session
	seed    int64
	inputs  []core.InputEvent
}

// NewRecorder starts recording s, which must be fresh and created with seed.
func NewRecorder(s *arkanoid.Session, seed int64) *Recorder {
	return &Recorder{session: s, seed: seed}
}

// Apply applies a to the session and records it against the number of
// ticks processed so far, which is the tick the intent precedes.
func (r *Recorder) Apply(a core.Action) {
	if a == core.ActionNone {
		return
	}
	r.inputs = append(r.inputs, core.InputEvent{Tick: r.session.Ticks(), Action: a})
	r.session.Apply(a)
}

// Len returns the number of recorded intents.
func (r *Recorder) Len() int {
	return len(r.inputs)
}

// Replay returns the recording together with the session's current outcome.
func (r *Recorder) Replay() Replay {
	inputs := make([]core.InputEvent, len(r.inputs))
	copy(inputs, r.inputs)
	return Replay{
		Seed:   r.seed,
		Inputs: inputs,
		Outcome: Outcome{
			Phase: r.session.Phase(),
			Score: r.session.Score(),
			Ticks: r.session.Ticks(),
		},
	}
}

// Player re-runs a replay one tick at a time.
type Player struct {
	session *arkanoid.Session
	inputs  []core.InputEvent
	next    int
	limit   uint64
}

// NewPlayer creates a session from cfg and the replay seed. Playback stops
// at the recorded tick count or when the session ends, whichever is first.
func NewPlayer(cfg arkanoid.Config, r Replay, l arkanoid.Listener) (*Player, error) {
	for i := 1; i < len(r.Inputs); i++ {
		if r.Inputs[i].Tick < r.Inputs[i-1].Tick {
			return nil, fmt.Errorf("replay: input %d at tick %d after tick %d: %w",
				i, r.Inputs[i].Tick, r.Inputs[i-1].Tick, ErrUnordered)
		}
	}
	return &Player{
		session: arkanoid.NewSession(cfg, r.Seed, l),
		inputs:  r.Inputs,
		limit:   r.Outcome.Ticks,
	}, nil
}

// Session returns the session being replayed.
func (p *Player) Session() *arkanoid.Session {
	return p.session
}

// Done reports whether playback has finished.
func (p *Player) Done() bool {
	return p.session.Phase().Terminal() || p.session.Ticks() >= p.limit
}

// Step applies the intents due before the next tick, then ticks once.
func (p *Player) Step() arkanoid.TickResult {
	if p.Done() {
		return arkanoid.TickResult{Phase: p.session.Phase(), Score: p.session.Score()}
	}

	now := p.session.Ticks()
	for p.next < len(p.inputs) && p.inputs[p.next].Tick <= now {
		p.session.Apply(p.inputs[p.next].Action)
		p.next++
	}
	return p.session.Tick()
}

// Outcome returns the current state of the replayed session.
func (p *Player) Outcome() Outcome {
	return Outcome{
		Phase: p.session.Phase(),
		Score: p.session.Score(),
		Ticks: p.session.Ticks(),
	}
}

// Run re-simulates r headlessly and returns how it ended.
func Run(cfg arkanoid.Config, r Replay) (Outcome, error) {
	p, err := NewPlayer(cfg, r, nil)
	if err != nil {
		return Outcome{}, err
	}
	for !p.Done() {
		p.Step()
	}
	return p.Outcome(), nil
}

// Verify re-simulates r and checks it reaches the recorded outcome.
func Verify(cfg arkanoid.Config, r Replay) error {
	got, err := Run(cfg, r)
	if err != nil {
		return err
	}
	if got != r.Outcome {
		return fmt.Errorf("replay: recorded %s/%d after %d ticks, simulated %s/%d after %d ticks: %w",
			r.Outcome.Phase, r.Outcome.Score, r.Outcome.Ticks,
			got.Phase, got.Score, got.Ticks, ErrMismatch)
	}
	return nil
}
