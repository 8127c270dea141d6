package arkanoid

import "github.com/vovakirdan/arkanoid/internal/core"

// Paddle is the player's horizontally moving rectangle.
type Paddle struct {
	X, Y     float64
	W, H     float64
	DX       float64
	Velocity float64
}

func newPaddle(spec PaddleSpec) Paddle {
	return Paddle{
		X:        spec.StartX,
		Y:        spec.StartY,
		W:        spec.W,
		H:        spec.H,
		Velocity: spec.Velocity,
	}
}

// Rect returns the paddle's current bounding box.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Start sets the paddle moving in the given direction at full speed.
func (p *Paddle) Start(dir core.Direction) {
	if dir == core.DirLeft {
		p.DX = -p.Velocity
		return
	}
	p.DX = p.Velocity
}

// Stop halts the paddle.
func (p *Paddle) Stop() {
	p.DX = 0
}

// CollideWorld zeroes DX when the next move would cross the left or right
// world edge. There is no clamp: the paddle stays where it is.
func (p *Paddle) CollideWorld(w World) bool {
	if w.OverflowsX(p.Rect().Translate(p.DX, 0)) {
		p.DX = 0
		return true
	}
	return false
}

// Move integrates DX and returns the displacement applied.
func (p *Paddle) Move() float64 {
	if p.DX == 0 {
		return 0
	}
	p.X += p.DX
	return p.DX
}

// TouchOffset maps an x coordinate on the paddle to a deflection factor:
// -1 at the left edge, 0 at the centre, +1 at the right edge. Points
// outside the paddle are clamped to the nearest edge.
func (p *Paddle) TouchOffset(x float64) float64 {
	if p.W <= 0 {
		return 0
	}
	diff := (p.X + p.W) - x
	offset := p.W - diff
	return core.ClampF(2*offset/p.W-1, -1, 1)
}
