package core

// Action represents a semantic game action, abstracted from physical key presses.
// The runner only understands jump press, jump release and restart; the rest
// belong to the platform.
type Action int

const (
	ActionNone        Action = iota
	ActionJump               // Space, Up - jump press (also starts the run)
	ActionJumpRelease        // Jump key let go (synthesized by the TUI)
	ActionRestart            // R key - restart after game over
	ActionPause              // P - pause/unpause
	ActionScores             // S - open the scoreboard
	ActionBack               // B, Escape - leave the current view
	ActionQuit               // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionJumpRelease:
		return "JumpRelease"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionScores:
		return "Scores"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
