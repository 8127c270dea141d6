package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/core"
)

// script returns the action a simple scripted player takes before a tick.
func script(tick uint64) core.Action {
	switch {
	case tick == 5:
		return core.ActionFire
	case tick%50 == 10:
		return core.ActionLeft
	case tick%50 == 30:
		return core.ActionRight
	case tick%50 == 45:
		return core.ActionStop
	}
	return core.ActionNone
}

func record(t *testing.T, seed int64, ticks int) Replay {
	t.Helper()
	s := arkanoid.NewSession(arkanoid.DefaultConfig(), seed, nil)
	rec := NewRecorder(s, seed)

	for range ticks {
		rec.Apply(script(s.Ticks()))
		if s.Tick().Phase.Terminal() {
			break
		}
	}
	return rec.Replay()
}

func TestRecorderStampsTicks(t *testing.T) {
	s := arkanoid.NewSession(arkanoid.DefaultConfig(), 1, nil)
	rec := NewRecorder(s, 1)

	rec.Apply(core.ActionRight)
	s.Tick()
	s.Tick()
	rec.Apply(core.ActionNone)
	rec.Apply(core.ActionFire)

	r := rec.Replay()
	if rec.Len() != 2 || len(r.Inputs) != 2 {
		t.Fatalf("expected 2 recorded inputs, got %d", len(r.Inputs))
	}
	if r.Inputs[0] != (core.InputEvent{Tick: 0, Action: core.ActionRight}) {
		t.Errorf("first input = %+v", r.Inputs[0])
	}
	if r.Inputs[1] != (core.InputEvent{Tick: 2, Action: core.ActionFire}) {
		t.Errorf("second input = %+v", r.Inputs[1])
	}
	if s.Holding() {
		t.Error("recorded intents must also be applied")
	}
	if r.Outcome.Ticks != 2 || r.Outcome.Phase != arkanoid.PhasePlaying {
		t.Errorf("outcome = %+v", r.Outcome)
	}
}

func TestReplayReproducesSession(t *testing.T) {
	for _, seed := range []int64{1, 42, 9001} {
		r := record(t, seed, 5000)

		got, err := Run(arkanoid.DefaultConfig(), r)
		if err != nil {
			t.Fatalf("seed %d: Run failed: %v", seed, err)
		}
		if got != r.Outcome {
			t.Errorf("seed %d: replay ended %+v, recorded %+v", seed, got, r.Outcome)
		}
		if err := Verify(arkanoid.DefaultConfig(), r); err != nil {
			t.Errorf("seed %d: Verify failed: %v", seed, err)
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	r := record(t, 42, 5000)
	r.Outcome.Score++

	err := Verify(arkanoid.DefaultConfig(), r)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() = %v, expected ErrMismatch", err)
	}
}

func TestVerifyDetectsDifferentConstants(t *testing.T) {
	r := record(t, 42, 5000)
	if !r.Outcome.Phase.Terminal() {
		t.Skip("scripted game did not finish")
	}

	cfg := arkanoid.DefaultConfig()
	cfg.Paddle.W = 40
	cfg.Ball.Velocity = 5

	if err := Verify(cfg, r); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() with other constants = %v, expected ErrMismatch", err)
	}
}

func TestPlayerStopsAtRecordedTicks(t *testing.T) {
	r := Replay{
		Seed:    3,
		Inputs:  []core.InputEvent{{Tick: 0, Action: core.ActionRight}, {Tick: 4, Action: core.ActionStop}},
		Outcome: Outcome{Phase: arkanoid.PhasePlaying, Ticks: 10},
	}

	p, err := NewPlayer(arkanoid.DefaultConfig(), r, nil)
	if err != nil {
		t.Fatal(err)
	}
	steps := 0
	for !p.Done() {
		p.Step()
		steps++
	}
	if steps != 10 {
		t.Errorf("played %d ticks, expected 10", steps)
	}

	// Four ticks moving right at 6 units per tick.
	snap := p.Session().Snapshot()
	if snap.Paddle.X != 280+4*6 {
		t.Errorf("paddle X = %v, expected %v", snap.Paddle.X, 280+4*6)
	}

	res := p.Step()
	if p.Session().Ticks() != 10 || res.Phase != arkanoid.PhasePlaying {
		t.Error("Step after Done should not tick")
	}
}

func TestPlayerRejectsUnorderedInputs(t *testing.T) {
	r := Replay{Inputs: []core.InputEvent{{Tick: 5}, {Tick: 2}}}

	if _, err := NewPlayer(arkanoid.DefaultConfig(), r, nil); !errors.Is(err, ErrUnordered) {
		t.Errorf("NewPlayer() = %v, expected ErrUnordered", err)
	}
}

func TestPlayerForwardsEvents(t *testing.T) {
	r := record(t, 42, 400)

	bounces := 0
	l := arkanoid.ListenerFunc(func(e arkanoid.Event) {
		if _, ok := e.(arkanoid.BounceEvent); ok {
			bounces++
		}
	})
	p, err := NewPlayer(arkanoid.DefaultConfig(), r, l)
	if err != nil {
		t.Fatal(err)
	}
	for !p.Done() {
		p.Step()
	}
	if bounces == 0 {
		t.Error("a 400 tick game with a launched ball should bounce at least once")
	}
}
