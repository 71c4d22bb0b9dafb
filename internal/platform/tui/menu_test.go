package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/registry"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

// lastScripted is the most recent game created through the registry.
var lastScripted *scriptedGame

func init() {
	registry.Register("scripted", func() registry.Game {
		lastScripted = &scriptedGame{}
		return lastScripted
	})
}

func menuKey(m MenuModel, key string) MenuModel {
	updated, _ := m.Update(keyMsg(key))
	return updated.(MenuModel)
}

func TestMenuNavigation(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(nil, "scripted", cfg)

	m = menuKey(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m = menuKey(m, "down")
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected to stop at the last item", m.cursor)
	}

	m = menuKey(m, "enter")
	if !m.IsQuitting() || m.Selected() != nil {
		t.Error("selecting Quit should quit without a selection")
	}
}

func TestMenuSelectDifficulty(t *testing.T) {
	m := NewMenuModel(nil, "scripted", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = menuKey(m, "down")
	m = menuKey(m, "down")
	m = menuKey(m, "enter")

	sel := m.Selected()
	if sel == nil || sel.Kind != MenuPlay || sel.Difficulty != "hard" {
		t.Fatalf("selected = %+v, expected the hard preset", sel)
	}
	if m.IsQuitting() {
		t.Error("selecting a sprint must not quit")
	}
}

func TestMenuTabOpensHistory(t *testing.T) {
	m := NewMenuModel(nil, "scripted", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = menuKey(m, "tab")
	if sel := m.Selected(); sel == nil || sel.Kind != MenuScores {
		t.Errorf("selected = %+v, expected run history", sel)
	}
}

func TestMenuViewShowsBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.RunRecord{GameID: "scripted", Score: 321}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	view := NewMenuModel(store, "scripted", core.RuntimeConfig{ScreenW: 100, ScreenH: 30}).View()
	for _, want := range []string{"Best score: 321", "Crunch time", "Run history"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func sessionStep(m SessionModel, msg tea.Msg) SessionModel {
	updated, _ := m.Update(msg)
	return updated.(SessionModel)
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	m := NewSessionModel("scripted", store, cfg, GameOptions{Player: "kai"})

	// Menu -> Chill sprint
	m = sessionStep(m, keyMsg("down"))
	m = sessionStep(m, keyMsg("enter"))
	if m.gameModel == nil {
		t.Fatal("selecting a sprint should start the game")
	}
	game := lastScripted
	if game.resets != 1 || game.config.Difficulty != "easy" {
		t.Errorf("game reset %d times with difficulty %q", game.resets, game.config.Difficulty)
	}

	// Burn out, then return to the menu
	game.state = core.GameState{Started: true, GameOver: true, Score: 77, Day: 2}
	m = sessionStep(m, TickMsg{})
	m = sessionStep(m, keyMsg("b"))
	if m.gameModel != nil {
		t.Fatal("back after game over should return to the menu")
	}
	if !strings.Contains(m.View(), "Best score: 77") {
		t.Error("menu should show the run just recorded")
	}

	// Menu -> history -> menu
	m = sessionStep(m, keyMsg("tab"))
	if m.scoreboard == nil {
		t.Fatal("tab should open the run history")
	}
	if !strings.Contains(m.View(), "kai") {
		t.Error("run history should list the player")
	}
	m = sessionStep(m, keyMsg("esc"))
	if m.scoreboard != nil {
		t.Error("esc should close the run history")
	}

	updated, cmd := m.Update(keyMsg("q"))
	if !updated.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
}
