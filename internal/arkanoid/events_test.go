package arkanoid

import "testing"

func TestListenersFanOut(t *testing.T) {
	var first, second []Event
	ls := Listeners{
		ListenerFunc(func(e Event) { first = append(first, e) }),
		nil,
		ListenerFunc(func(e Event) { second = append(second, e) }),
	}

	ls.Notify(BounceEvent{Source: BouncePaddle})
	ls.Notify(GameEndedEvent{Result: PhaseLost, Score: 3})

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("every listener should see both events, got %d and %d", len(first), len(second))
	}
	if first[1] != (GameEndedEvent{Result: PhaseLost, Score: 3}) {
		t.Errorf("unexpected event %v", first[1])
	}
}

func TestSessionWithNilListener(t *testing.T) {
	s := NewSession(DefaultConfig(), 1, nil)
	s.holding = false
	s.ball.X, s.ball.DX, s.ball.DY = 1, -3, -3

	res := s.Tick()
	if len(res.Events) != 1 {
		t.Errorf("events should still be collected without a listener, got %v", res.Events)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{PhasePlaying.String(), "playing"},
		{PhaseWon.String(), "won"},
		{PhaseLost.String(), "lost"},
		{Phase(9).String(), "unknown"},
		{BounceBlock.String(), "block"},
		{BounceWallTop.String(), "wall-top"},
		{EdgeBottom.String(), "bottom"},
		{EdgeNone.String(), "none"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("got %q, expected %q", tc.got, tc.want)
		}
	}
}

func TestSimpleRNGBetween(t *testing.T) {
	r := NewSimpleRNG(99)
	for range 1000 {
		v := r.Between(-3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("Between(-3, 3) = %d", v)
		}
	}

	a, b := NewSimpleRNG(5), NewSimpleRNG(5)
	for range 10 {
		if a.Next() != b.Next() {
			t.Fatal("same seed should produce the same sequence")
		}
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhasePlaying, PhaseWon, PhaseLost} {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, err)
		}
	}

	if _, err := ParsePhase("unknown"); err == nil {
		t.Error("ParsePhase should reject unknown names")
	}
}
