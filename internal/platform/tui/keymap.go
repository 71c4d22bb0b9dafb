package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krackeddevs/sprint-runner/internal/core"
)

// DefaultReleaseAfter is how long the jump key counts as held after its
// last key event.
const DefaultReleaseAfter = 200 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals report key presses (and auto-repeats) but never key releases, so
// the mapper tracks the jump key itself: the first event is a press, repeats
// keep it held, and Tick reports a release once no event arrived for
// releaseAfter.
type KeyMapper struct {
	releaseAfter time.Duration
	now          func() time.Time

	jumpHeld bool
	lastJump time.Time
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper(releaseAfter time.Duration) *KeyMapper {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &KeyMapper{
		releaseAfter: releaseAfter,
		now:          time.Now,
	}
}

// isJumpKey reports whether the key is bound to jump.
func isJumpKey(key string) bool {
	switch key {
	case " ", "up", "w", "k":
		return true
	}
	return false
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if isJumpKey(key) {
		wasHeld := km.jumpHeld
		km.jumpHeld = true
		km.lastJump = km.now()
		if wasHeld {
			// Auto-repeat of a held key
			return core.ActionNone, false
		}
		return core.ActionJump, false
	}

	switch key {
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "s":
		return core.ActionScores, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Tick adds a synthesized jump release to the frame once the jump key has
// been quiet for the release delay. Call it once per simulation tick.
func (km *KeyMapper) Tick(frame *core.InputFrame) {
	if !km.jumpHeld {
		return
	}
	if km.now().Sub(km.lastJump) >= km.releaseAfter {
		km.jumpHeld = false
		frame.Set(core.ActionJumpRelease)
	}
}

// JumpHeld reports whether the jump key currently counts as held.
func (km *KeyMapper) JumpHeld() bool {
	return km.jumpHeld
}

// Reset forgets any held key, e.g. when switching views.
func (km *KeyMapper) Reset() {
	km.jumpHeld = false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
