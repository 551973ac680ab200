package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow; previous step while reviewing
	ActionRight          // D, Right arrow; next step while reviewing
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionUndo           // U - take back the last move
	ActionReview         // V - browse the move history
	ActionConfirm        // Enter - resume from the reviewed step
	ActionBack           // Escape - leave review
	ActionNewGame        // N - archive this game and start another
	ActionHelp           // ? - toggle the full help view
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionUndo:
		return "Undo"
	case ActionReview:
		return "Review"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionNewGame:
		return "NewGame"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action slides the board.
func (a Action) IsMove() bool {
	return a >= ActionLeft && a <= ActionDown
}
