package core

import "fmt"

// Direction is the horizontal direction of a paddle movement intent.
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Action represents a semantic game intent, abstracted from physical key presses.
// These are the only input events the game core accepts.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // start moving the paddle left
	ActionRight        // start moving the paddle right
	ActionStop         // stop the paddle (key released)
	ActionFire         // launch the docked ball
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionStop:
		return "stop"
	case ActionFire:
		return "fire"
	default:
		return "unknown"
	}
}

// ParseAction converts the String form back to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "none":
		return ActionNone, nil
	case "left":
		return ActionLeft, nil
	case "right":
		return ActionRight, nil
	case "stop":
		return ActionStop, nil
	case "fire":
		return ActionFire, nil
	}
	return ActionNone, fmt.Errorf("core: unknown action %q", s)
}

// InputEvent is an action stamped with the simulation tick before which it
// was applied. A sequence of input events plus the RNG seed fully determines
// a game.
type InputEvent struct {
	Tick   uint64
	Action Action
}
