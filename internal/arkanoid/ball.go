package arkanoid

import "github.com/vovakirdan/arkanoid/internal/core"

// Ball is the moving square treated as an axis-aligned rectangle.
// DX and DY are per-tick displacements.
type Ball struct {
	X, Y     float64
	W, H     float64
	DX, DY   float64
	Velocity float64
}

func newBall(spec BallSpec) Ball {
	return Ball{
		X:        spec.StartX,
		Y:        spec.StartY,
		W:        spec.W,
		H:        spec.H,
		Velocity: spec.Velocity,
	}
}

// Rect returns the ball's current bounding box.
func (b *Ball) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Prospective returns the bounding box the ball would occupy after
// applying its pending displacement.
func (b *Ball) Prospective() core.Rect {
	return b.Rect().Translate(b.DX, b.DY)
}

// Collides reports whether the ball's prospective box overlaps target.
func (b *Ball) Collides(target core.Rect) bool {
	return b.Prospective().Intersects(target)
}

// Launch sends the ball upward with the given horizontal displacement.
func (b *Ball) Launch(dx float64) {
	b.DY = -b.Velocity
	b.DX = dx
}

// BumpBlock reflects the ball vertically. Horizontal motion is preserved.
func (b *Ball) BumpBlock() {
	b.DY = -b.DY
}

// BumpPaddle bounces the ball off the paddle. Only a ball moving downward
// is deflected; returns false otherwise.
//
// A moving paddle first carries the ball by its own displacement, then the
// ball centre picks the deflection factor.
func (b *Ball) BumpPaddle(p *Paddle) bool {
	if b.DY <= 0 {
		return false
	}
	b.DY = -b.Velocity
	if p.DX != 0 {
		b.X += p.DX
	}
	touchX := b.X + b.W/2
	b.DX = b.Velocity * p.TouchOffset(touchX)
	return true
}

// CollideWorld applies the world boundary policy to the prospective box and
// returns the edge that was handled. Left, right and top edges snap the ball
// back inside and reflect it at full velocity. The bottom edge is reported
// without any correction.
func (b *Ball) CollideWorld(w World) Edge {
	edge := w.Overflow(b.Prospective())
	switch edge {
	case EdgeLeft:
		b.X = 0
		b.DX = b.Velocity
	case EdgeRight:
		b.X = w.Width - b.W
		b.DX = -b.Velocity
	case EdgeTop:
		b.Y = 0
		b.DY = b.Velocity
	}
	return edge
}

// Move integrates the pending displacement.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}
