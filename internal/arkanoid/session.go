package arkanoid

import (
	"fmt"

	"github.com/vovakirdan/arkanoid/internal/core"
)

// Phase is the state of a session. Won and Lost are terminal.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for _, p := range []Phase{PhasePlaying, PhaseWon, PhaseLost} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("arkanoid: unknown phase %q", s)
}

// Terminal reports whether no further ticks will be processed.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// TickResult is returned by Session.Tick.
type TickResult struct {
	Phase  Phase
	Score  int
	Events []Event
}

// Session exclusively owns the ball, the paddle and the block grid for one
// game. Restarting a game means creating a new Session.
//
// Input intents (Start, Stop, Fire) only touch velocities and the docking
// flag; positions change exclusively inside Tick.
type Session struct {
	cfg      Config
	world    World
	ball     Ball
	paddle   Paddle
	grid     *BlockGrid
	holding  bool // paddle still carries the ball
	score    int
	phase    Phase
	ticks    uint64
	rng      *SimpleRNG
	anim     Animation
	listener Listener
	events   []Event
}

// NewSession creates a session in the Playing phase with the ball docked on
// the paddle. l may be nil.
func NewSession(cfg Config, seed int64, l Listener) *Session {
	s := &Session{
		cfg:      cfg,
		world:    cfg.World,
		ball:     newBall(cfg.Ball),
		paddle:   newPaddle(cfg.Paddle),
		grid:     NewBlockGrid(cfg.Grid),
		holding:  true,
		phase:    PhasePlaying,
		rng:      NewSimpleRNG(seed),
		anim:     NewAnimation(cfg.AnimationFrames),
		listener: l,
	}
	if s.grid.Len() == 0 {
		s.phase = PhaseWon
	}
	return s
}

// Start begins moving the paddle in dir.
func (s *Session) Start(dir core.Direction) {
	if s.phase.Terminal() {
		return
	}
	s.paddle.Start(dir)
}

// Stop halts the paddle. Calling it on a stopped paddle changes nothing.
func (s *Session) Stop() {
	if s.phase.Terminal() {
		return
	}
	s.paddle.Stop()
}

// Fire launches the docked ball upward with a random integer horizontal
// speed in [-velocity, velocity]. It is a no-op once the ball is released.
func (s *Session) Fire() {
	if !s.holding || s.phase.Terminal() {
		return
	}
	v := int(s.ball.Velocity)
	s.ball.Launch(float64(s.rng.Between(-v, v)))
	s.holding = false
}

// Apply dispatches a semantic input action to the matching intent.
func (s *Session) Apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		s.Start(core.DirLeft)
	case core.ActionRight:
		s.Start(core.DirRight)
	case core.ActionStop:
		s.Stop()
	case core.ActionFire:
		s.Fire()
	}
}

// Tick advances the simulation by one fixed step. Ticks requested after the
// session reached a terminal phase are ignored.
//
// Order: ball vs blocks, ball vs paddle, ball vs world, paddle vs world,
// then integration of the ball and the paddle (dragging a docked ball).
func (s *Session) Tick() TickResult {
	if s.phase.Terminal() {
		return TickResult{Phase: s.phase, Score: s.score}
	}

	s.events = nil
	s.ticks++

	if s.collideBlocks() {
		return s.result()
	}
	s.collidePaddle()
	if s.collideWorld() {
		return s.result()
	}
	s.paddle.CollideWorld(s.world)

	s.ball.Move()
	if moved := s.paddle.Move(); moved != 0 && s.holding {
		s.ball.X += moved
	}

	return s.result()
}

// collideBlocks resolves the ball against every active block in order and
// reports whether the last block fell.
func (s *Session) collideBlocks() (won bool) {
	s.grid.each(func(i int, b *Block) bool {
		if !s.ball.Collides(b.Rect()) {
			return false
		}
		s.ball.BumpBlock()
		s.grid.Deactivate(i)
		s.score++
		s.emit(BounceEvent{Source: BounceBlock})

		if s.score == s.grid.Len() {
			s.end(PhaseWon)
			won = true
			return true
		}
		return false
	})
	return won
}

func (s *Session) collidePaddle() {
	if !s.ball.Collides(s.paddle.Rect()) {
		return
	}
	if s.ball.BumpPaddle(&s.paddle) {
		s.emit(BounceEvent{Source: BouncePaddle})
	}
}

// collideWorld applies the ball boundary policy and reports whether the
// ball left through the bottom.
func (s *Session) collideWorld() (lost bool) {
	switch s.ball.CollideWorld(s.world) {
	case EdgeLeft:
		s.emit(BounceEvent{Source: BounceWallLeft})
	case EdgeRight:
		s.emit(BounceEvent{Source: BounceWallRight})
	case EdgeTop:
		s.emit(BounceEvent{Source: BounceWallTop})
	case EdgeBottom:
		s.end(PhaseLost)
		return true
	}
	return false
}

func (s *Session) end(p Phase) {
	s.phase = p
	s.emit(GameEndedEvent{Result: p, Score: s.score})
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
	if s.listener != nil {
		s.listener.Notify(e)
	}
}

func (s *Session) result() TickResult {
	return TickResult{Phase: s.phase, Score: s.score, Events: s.events}
}

// AdvanceAnimation steps the decorative ball sprite frame.
func (s *Session) AdvanceAnimation() {
	s.anim.Advance()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the number of blocks destroyed.
func (s *Session) Score() int { return s.score }

// Total returns the number of blocks in the grid.
func (s *Session) Total() int { return s.grid.Len() }

// Ticks returns the number of ticks processed so far.
func (s *Session) Ticks() uint64 { return s.ticks }

// Holding reports whether the ball is still docked on the paddle.
func (s *Session) Holding() bool { return s.holding }

// Config returns the constants this session was created with.
func (s *Session) Config() Config { return s.cfg }
