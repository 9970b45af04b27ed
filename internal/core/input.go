package core

// Action represents a semantic input event, abstracted from physical key presses.
// Input sources (keyboard, SSH session, autopilot) produce actions; the engine
// consumes them without knowing where they came from.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move impulse -1
	ActionRight          // D, Right arrow - move impulse +1
	ActionFire           // W, Space - fire impulse
	ActionRestart        // R - reset the round
	ActionQuit           // Q, Esc, Ctrl+C - shut the engine down
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "MoveLeft"
	case ActionRight:
		return "MoveRight"
	case ActionFire:
		return "Fire"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the horizontal impulse carried by a move action:
// -1 for left, +1 for right and 0 for everything else.
func (a Action) Direction() int {
	switch a {
	case ActionLeft:
		return -1
	case ActionRight:
		return 1
	default:
		return 0
	}
}
