package arkanoid

import "github.com/vovakirdan/arkanoid/internal/core"

// World is the static playfield. It owns nothing mutable.
type World struct {
	Width  float64
	Height float64
}

// Bounds returns the playfield as a rectangle anchored at the origin.
func (w World) Bounds() core.Rect {
	return core.NewRect(0, 0, w.Width, w.Height)
}

// Edge identifies a world boundary.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Overflow returns the first edge of the world that r crosses, testing in
// the fixed order left, right, top, bottom. Only one edge is reported even
// when r crosses several of them.
func (w World) Overflow(r core.Rect) Edge {
	switch {
	case r.X < 0:
		return EdgeLeft
	case r.Right() > w.Width:
		return EdgeRight
	case r.Y < 0:
		return EdgeTop
	case r.Bottom() > w.Height:
		return EdgeBottom
	}
	return EdgeNone
}

// OverflowsX reports whether r crosses the left or right world edge.
func (w World) OverflowsX(r core.Rect) bool {
	return r.X < 0 || r.Right() > w.Width
}
