package arkanoid

// Animation is the decorative ball sprite frame counter. It is advanced by
// its own low-frequency driver and is never read by collision or movement
// code.
type Animation struct {
	frame  int
	frames int
}

// NewAnimation creates a counter cycling through n frames.
func NewAnimation(n int) Animation {
	return Animation{frames: max(n, 1)}
}

// Advance moves to the next frame, wrapping around.
func (a *Animation) Advance() {
	a.frame = (a.frame + 1) % a.frames
}

// Frame returns the current frame index.
func (a Animation) Frame() int {
	return a.frame
}
