package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krackeddevs/sprint-runner/internal/core"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestKeyMapper() (*KeyMapper, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	km := NewKeyMapper(200 * time.Millisecond)
	km.now = clock.Now
	return km, clock
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key      string
		expected core.Action
		quit     bool
	}{
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"s", core.ActionScores, false},
		{"b", core.ActionBack, false},
		{"esc", core.ActionBack, false},
		{"x", core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			km, _ := newTestKeyMapper()
			action, quit := km.MapKey(keyMsg(tc.key))
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.key, action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestJumpKeysPress(t *testing.T) {
	for _, key := range []string{" ", "up", "w"} {
		km, _ := newTestKeyMapper()
		if action, _ := km.MapKey(keyMsg(key)); action != core.ActionJump {
			t.Errorf("MapKey(%q) = %v, expected Jump", key, action)
		}
	}
}

func TestJumpReleaseSynthesized(t *testing.T) {
	km, clock := newTestKeyMapper()

	frame := core.NewInputFrame()
	km.MapKeyToFrame(keyMsg(" "), &frame)
	if !frame.Has(core.ActionJump) {
		t.Fatal("first jump key event should press")
	}
	frame.Clear()

	// Auto-repeat keeps the key held without pressing again
	clock.Advance(150 * time.Millisecond)
	km.MapKeyToFrame(keyMsg(" "), &frame)
	km.Tick(&frame)
	if frame.Has(core.ActionJump) || frame.Has(core.ActionJumpRelease) {
		t.Error("auto-repeat should neither press nor release")
	}
	if !km.JumpHeld() {
		t.Error("key should still be held")
	}

	clock.Advance(199 * time.Millisecond)
	km.Tick(&frame)
	if frame.Has(core.ActionJumpRelease) {
		t.Error("release came too early")
	}

	clock.Advance(time.Millisecond)
	km.Tick(&frame)
	if !frame.Has(core.ActionJumpRelease) {
		t.Fatal("release should be synthesized after the quiet period")
	}
	frame.Clear()

	// Only once
	clock.Advance(time.Second)
	km.Tick(&frame)
	if frame.Has(core.ActionJumpRelease) {
		t.Error("release should be reported once")
	}

	// The next key event is a fresh press
	km.MapKeyToFrame(keyMsg(" "), &frame)
	if !frame.Has(core.ActionJump) {
		t.Error("key after release should press again")
	}
}

func TestKeyMapperReset(t *testing.T) {
	km, _ := newTestKeyMapper()
	km.MapKey(keyMsg(" "))
	km.Reset()

	if km.JumpHeld() {
		t.Error("Reset should clear the held key")
	}
	if action, _ := km.MapKey(keyMsg(" ")); action != core.ActionJump {
		t.Error("key after Reset should press")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"up", MenuActionUp},
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"s", MenuActionDown},
		{" ", MenuActionSelect},
		{"tab", MenuActionScoreboard},
		{"esc", MenuActionBack},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	km, _ := newTestKeyMapper()
	for _, tc := range tests {
		msg := keyMsg(tc.key)
		if tc.key == "tab" {
			msg = tea.KeyMsg{Type: tea.KeyTab}
		}
		if got := km.MapKeyToMenuAction(msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}
