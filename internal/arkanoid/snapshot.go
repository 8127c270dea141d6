package arkanoid

import (
	"math"

	"github.com/vovakirdan/arkanoid/internal/core"
)

// BlockView is the read-only state of one block.
type BlockView struct {
	Row, Col int
	Rect     core.Rect
	Active   bool
}

// Snapshot is a read-only copy of everything a presenter needs for one
// frame. Mutating it has no effect on the session.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Score   int
	Total   int
	World   World
	Holding bool

	Ball      core.Rect
	BallDX    float64
	BallDY    float64
	BallFrame int // decorative, excluded from Hash

	Paddle   core.Rect
	PaddleDX float64

	Blocks []BlockView
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	blocks := make([]BlockView, s.grid.Len())
	for i := range blocks {
		b := s.grid.Block(i)
		blocks[i] = BlockView{Row: b.Row, Col: b.Col, Rect: b.Rect(), Active: b.Active}
	}

	return Snapshot{
		Tick:      s.ticks,
		Phase:     s.phase,
		Score:     s.score,
		Total:     s.grid.Len(),
		World:     s.world,
		Holding:   s.holding,
		Ball:      s.ball.Rect(),
		BallDX:    s.ball.DX,
		BallDY:    s.ball.DY,
		BallFrame: s.anim.Frame(),
		Paddle:    s.paddle.Rect(),
		PaddleDX:  s.paddle.DX,
		Blocks:    blocks,
	}
}

// Hash returns a simple hash of the physics state for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Total) //#nosec G115 -- hash computation
	if snap.Holding {
		h = h*31 + 1
	}

	for _, f := range []float64{
		snap.Ball.X, snap.Ball.Y, snap.BallDX, snap.BallDY,
		snap.Paddle.X, snap.Paddle.Y, snap.PaddleDX,
	} {
		h = h*31 + math.Float64bits(f)
	}

	for _, b := range snap.Blocks {
		if b.Active {
			h = h*31 + 1
		} else {
			h = h*31 + 2
		}
	}

	return h
}

// ActiveBlocks returns the number of blocks still standing.
func (snap *Snapshot) ActiveBlocks() int {
	n := 0
	for _, b := range snap.Blocks {
		if b.Active {
			n++
		}
	}
	return n
}
