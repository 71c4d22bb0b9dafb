package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

// MenuItemKind says what choosing a menu entry does.
type MenuItemKind int

const (
	MenuPlay MenuItemKind = iota
	MenuScores
	MenuQuit
)

// MenuItem is one selectable line of the start menu.
type MenuItem struct {
	Label      string
	Hint       string
	Kind       MenuItemKind
	Difficulty string // Preset for MenuPlay; empty keeps the configured one
}

// DefaultMenuItems returns the start menu entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Start sprint", Hint: "normal pace", Kind: MenuPlay},
		{Label: "Chill sprint", Hint: "capped speed, fewer chains", Kind: MenuPlay, Difficulty: "easy"},
		{Label: "Crunch time", Hint: "faster ramp, early chains", Kind: MenuPlay, Difficulty: "hard"},
		{Label: "Steady state", Hint: "speed never rises", Kind: MenuPlay, Difficulty: "fixed"},
		{Label: "Run history", Kind: MenuScores},
		{Label: "Quit", Kind: MenuQuit},
	}
}

// MenuModel is the Bubble Tea model for the start menu. A SessionModel
// reads Selected after every update.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	best      int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. The store is only read for the
// best score and may be nil.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(0),
	}
	if store != nil {
		if best, err := store.HighScore(gameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Kind == MenuQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
		return m, nil

	case MenuActionScoreboard:
		m.selected = &MenuItem{Label: "Run history", Kind: MenuScores}
		return m, nil
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S P R I N T   R U N N E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Dodge the bugs. Ship the features. Avoid burnout.", m.width))
	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best score: %d", m.best), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := make([]string, len(m.items))
	for i, item := range m.items {
		line := "  " + item.Label
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Label)
		}
		if item.Hint != "" {
			line += menuHintStyle.Render("  (" + item.Hint + ")")
		}
		lines[i] = line
	}
	b.WriteString(centerText(lipgloss.JoinVertical(lipgloss.Left, lines...), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
