package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomberman-ecs/internal/game"
)

// Controller is the part of the engine the screen drives.
type Controller interface {
	EnqueueAction(a game.Action)
	Restart()
}

// snapshotMsg carries a new game state from the engine.
type snapshotMsg game.Snapshot

// closedMsg reports that the snapshot feed has ended.
type closedMsg struct{}

// Model is the Bubbletea model for the local game.
type Model struct {
	engine   Controller
	updates  <-chan game.Snapshot
	snap     *game.Snapshot
	quitting bool
}

// NewModel creates a model that sends input to engine and draws the states
// arriving on updates.
func NewModel(engine Controller, updates <-chan game.Snapshot) Model {
	return Model{engine: engine, updates: updates}
}

// Feed returns an engine OnTick callback forwarding snapshots to ch. A
// snapshot the screen has not picked up yet is replaced by the newer one, so
// a slow terminal never stalls the simulation. ch should be buffered; on an
// unbuffered channel a snapshot is only delivered if a reader is waiting.
func Feed(ch chan game.Snapshot) func(game.Snapshot) {
	return func(s game.Snapshot) {
		if cap(ch) == 0 {
			select {
			case ch <- s:
			default:
			}
			return
		}
		for {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Init starts listening for state updates from the engine.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// Update handles incoming messages (key presses, state updates).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		snap := game.Snapshot(msg)
		m.snap = &snap
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current game state.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye! 👋\n"
	}

	// Layout: board on the left, HUD on the right
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		RenderBoard(m.snap),
		"  ",
		RenderHUD(m.snap),
	) + "\n"
}

var moveKeys = map[string]game.Direction{
	"up":    game.DirUp,
	"w":     game.DirUp,
	"down":  game.DirDown,
	"s":     game.DirDown,
	"left":  game.DirLeft,
	"a":     game.DirLeft,
	"right": game.DirRight,
	"d":     game.DirRight,
}

// handleKey processes keyboard input. Pressing the direction the player is
// already walking in stops it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if d, ok := moveKeys[key]; ok {
		if m.snap != nil && m.snap.Player.Heading == d {
			m.engine.EnqueueAction(game.Action{Type: game.ActionStop})
		} else {
			m.engine.EnqueueAction(game.Action{Type: game.ActionMove, Dir: d})
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case " ":
		m.engine.EnqueueAction(game.Action{Type: game.ActionPlaceBomb})
	case "x":
		m.engine.EnqueueAction(game.Action{Type: game.ActionStop})
	case "enter":
		if m.snap != nil && m.snap.Status != game.StatusRunning {
			m.engine.Restart()
		}
	}

	return m, nil
}

// waitForSnapshot returns a Cmd that waits for the next state from the engine.
func waitForSnapshot(updates <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}
