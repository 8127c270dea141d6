package arkanoid

// Event is emitted by the session during a tick. Events flow one way, from
// the core to its collaborators (audio, host), and never affect game logic.
type Event interface {
	event()
}

// BounceSource identifies what the ball bounced off.
type BounceSource int

const (
	BounceBlock BounceSource = iota
	BouncePaddle
	BounceWallLeft
	BounceWallRight
	BounceWallTop
)

// String returns a human-readable name for the bounce source.
func (s BounceSource) String() string {
	switch s {
	case BounceBlock:
		return "block"
	case BouncePaddle:
		return "paddle"
	case BounceWallLeft:
		return "wall-left"
	case BounceWallRight:
		return "wall-right"
	case BounceWallTop:
		return "wall-top"
	default:
		return "unknown"
	}
}

// BounceEvent is emitted on every resolved collision.
type BounceEvent struct {
	Source BounceSource
}

func (BounceEvent) event() {}

// GameEndedEvent is emitted once, when the session enters a terminal phase.
type GameEndedEvent struct {
	Result Phase
	Score  int
}

func (GameEndedEvent) event() {}

// Listener receives events as they are emitted. Implementations must not
// block; the call happens inside Tick.
type Listener interface {
	Notify(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) {
	f(e)
}

// Listeners fans an event out to several listeners. Nil entries are skipped.
type Listeners []Listener

// Notify forwards e to every listener in order.
func (ls Listeners) Notify(e Event) {
	for _, l := range ls {
		if l != nil {
			l.Notify(e)
		}
	}
}
