package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/registry"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

// GameOptions carries the per-player settings of a GameModel.
type GameOptions struct {
	Player       string        // Name stored with finished runs
	ReleaseAfter time.Duration // Jump key release delay; 0 uses the default
	Logger       *log.Logger   // nil discards
}

// GameModel is the Bubble Tea model that plays one game. It drives the
// simulation tick, records finished runs and can show the run history.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	scoreboard *ScoreboardModel
	lastRun    *storage.RunRecord
	standalone bool // Quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current game over has been recorded
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(opts.ReleaseAfter),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales its world to the screen, so no reset is needed
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.scoreboard != nil {
			m.scoreboard.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// History and leaving are only offered while no run is live
	idle := !m.gameState.Started || m.gameState.GameOver || m.gameState.Paused

	if m.inputFrame.Has(core.ActionScores) {
		delete(m.inputFrame.Actions, core.ActionScores)
		if idle {
			sb := NewScoreboardModel(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
			m.keyMapper.Reset()
		}
		return m, nil
	}

	if m.inputFrame.Has(core.ActionBack) && idle {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateScoreboard forwards input to the open run history.
func (m GameModel) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scoreboard.Update(msg)
	sb, _ := updated.(ScoreboardModel)

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}

	m.scoreboard = &sb
	return m, cmd
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.scoreboard == nil {
		m.keyMapper.Tick(&m.inputFrame)
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State

		if m.gameState.GameOver {
			m.recordRun()
		} else {
			m.runSaved = false
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run once per game over.
func (m *GameModel) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	st := m.gameState
	m.logger.Info("run finished",
		"game", m.game.ID(),
		"player", m.opts.Player,
		"score", st.Score,
		"day", st.Day,
		"shipped", st.Shipped,
		"cause", st.Cause,
	)

	if m.store == nil {
		return
	}
	saved, err := m.store.SaveRun(storage.RunRecord{
		GameID:          m.game.ID(),
		Player:          m.opts.Player,
		Score:           st.Score,
		SprintDay:       st.Day,
		FeaturesShipped: st.Shipped,
		Cause:           st.Cause,
		DurationMs:      st.Elapsed,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRun = &saved
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sprint", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRun returns the most recently saved run, if any.
func (m GameModel) LastRun() *storage.RunRecord {
	return m.lastRun
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, store, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
