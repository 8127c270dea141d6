// Package arkanoid implements the physics, collision resolution and state
// machine of a single-screen brick breaker.
//
// The package is pure: it performs no I/O, owns no timers and never calls
// into presentation code. A host drives it by calling Session.Tick once per
// displayed frame and forwards intents (Start, Stop, Fire) between ticks.
package arkanoid

// GridLayout describes the fixed rectangular block grid.
type GridLayout struct {
	Rows, Cols     int
	BlockW, BlockH float64
	PitchX, PitchY float64 // distance between the origins of adjacent cells
	OriginX        float64
	OriginY        float64
}

// BallSpec holds the ball size, speed and docked start position.
type BallSpec struct {
	W, H     float64
	Velocity float64
	StartX   float64
	StartY   float64
}

// PaddleSpec holds the paddle size, speed and start position.
type PaddleSpec struct {
	W, H     float64
	Velocity float64
	StartX   float64
	StartY   float64
}

// Config is the complete set of constants for one session.
type Config struct {
	World           World
	Grid            GridLayout
	Ball            BallSpec
	Paddle          PaddleSpec
	AnimationFrames int // number of decorative ball sprite frames
}

// DefaultConfig returns the classic 640x360 layout with a 4x8 grid.
func DefaultConfig() Config {
	world := World{Width: 640, Height: 360}
	ball := BallSpec{W: 20, H: 20, Velocity: 3}
	ball.StartX = world.Width / 2
	ball.StartY = world.Height - 80

	return Config{
		World: world,
		Grid: GridLayout{
			Rows:    4,
			Cols:    8,
			BlockW:  60,
			BlockH:  20,
			PitchX:  64,
			PitchY:  24,
			OriginX: 65,
			OriginY: 35,
		},
		Ball: ball,
		Paddle: PaddleSpec{
			W:        100,
			H:        14,
			Velocity: 6,
			StartX:   world.Width/2 - 2*ball.W,
			StartY:   world.Height - 60,
		},
		AnimationFrames: 4,
	}
}
