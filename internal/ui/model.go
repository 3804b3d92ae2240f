package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-boomberman/internal/game"
)

// stateMsg carries a new snapshot from the source.
type stateMsg game.GameState

// errMsg carries an error.
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// Model is the Bubbletea model for the game and for spectators.
type Model struct {
	source   Source
	state    *game.GameState
	readOnly bool   // Spectators never send intents
	status   string // One-line feedback for local commands
	err      error
	quitting bool
}

// NewModel creates a model that plays through the given source.
func NewModel(source Source) Model {
	return Model{source: source}
}

// NewSpectatorModel creates a model that only watches.
func NewSpectatorModel(source Source) Model {
	return Model{source: source, readOnly: true}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForState(m.source)
}

// Update handles key presses and snapshots.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		state := game.GameState(msg)
		m.state = &state
		return m, waitForState(m.source)

	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the board with the HUD on its right.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Render("Error: "+m.err.Error()) + "\n"
	}

	board := RenderBoard(m.state)
	hud := RenderHUD(m.state, m.readOnly, m.status)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		board,
		"  ",
		hud,
	) + "\n"
}

// keyActions maps terminal keys to intents. WASD steers the hero and the
// arrow keys steer the walking bomb.
var keyActions = map[string]game.Action{
	"w":     game.ActionUp,
	"s":     game.ActionDown,
	"a":     game.ActionLeft,
	"d":     game.ActionRight,
	"up":    game.ActionBombUp,
	"down":  game.ActionBombDown,
	"left":  game.ActionBombLeft,
	"right": game.ActionBombRight,
	"h":     game.ActionPlace,
	" ":     game.ActionPlace,
	"j":     game.ActionDetonate,
	"r":     game.ActionRestart,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "c":
		m.status = m.copyBoard()
		return m, nil
	}

	if m.readOnly {
		return m, nil
	}
	if a, ok := keyActions[key]; ok {
		m.source.Press(a)
	}
	return m, nil
}

// copyBoard puts the text dump of the current board on the system clipboard.
func (m Model) copyBoard() string {
	if m.state == nil {
		return "Nothing to copy yet"
	}
	if err := clipboard.WriteAll(m.state.String()); err != nil {
		return fmt.Sprintf("Copy failed: %v", err)
	}
	return "Board copied to clipboard"
}

// failer is implemented by sources that know why their stream ended.
type failer interface {
	Err() error
}

// waitForState returns a Cmd that waits for the next snapshot.
func waitForState(source Source) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-source.States()
		if !ok {
			if f, ok := source.(failer); ok && f.Err() != nil {
				return errMsg{err: fmt.Errorf("state stream closed: %w", f.Err())}
			}
			return errMsg{err: fmt.Errorf("state stream closed")}
		}
		return stateMsg(state)
	}
}
