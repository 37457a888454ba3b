package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomberman-ecs/internal/game"
)

// Color palette
var (
	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#1a1a2e"))

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true).
			Blink(true)

	lostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// RenderBoard converts a snapshot into a styled terminal string. Each tile
// is 2 characters wide for a square-ish appearance and shows the top-most
// entity whose centre lies on it.
func RenderBoard(snap *game.Snapshot) string {
	if snap == nil || len(snap.Tiles) == 0 {
		return "Waiting for game state..."
	}

	// Entities arrive ordered by layer, so later ones are drawn on top
	cells := make([][]string, snap.Height)
	for r := range cells {
		cells[r] = make([]string, snap.Width)
	}
	for _, v := range snap.Entities {
		c := v.Center()
		row := int(math.Floor(c.Y / snap.TileSize))
		col := int(math.Floor(c.X / snap.TileSize))
		if row < 0 || row >= snap.Height || col < 0 || col >= snap.Width {
			continue
		}
		cells[row][col] = v.Sprite.Render()
	}

	rows := make([]string, 0, snap.Height)
	for _, line := range cells {
		var b strings.Builder
		for _, cell := range line {
			if cell == "" {
				cell = emptyStyle.Render("  ")
			}
			b.WriteString(cell)
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// RenderHUD renders the heads-up display showing player info and game status.
func RenderHUD(snap *game.Snapshot) string {
	if snap == nil {
		return ""
	}

	var parts []string

	// Title
	parts = append(parts, titleStyle.Render("💣 BOMBERMAN"))
	parts = append(parts, labelStyle.Render("session "+shortID(snap.SessionID)))
	parts = append(parts, "")

	// Game status
	switch snap.Status {
	case game.StatusRunning:
		parts = append(parts, runningStyle.Render("🔥 GAME IN PROGRESS"))
	case game.StatusWon:
		parts = append(parts, winnerStyle.Render("🏆 ALL CREEPS DESTROYED!"))
		parts = append(parts, "   Press [Enter] to play again")
	case game.StatusLost:
		parts = append(parts, lostStyle.Render("💀 GAME OVER"))
		parts = append(parts, "   Press [Enter] to play again")
	}
	parts = append(parts, "")

	p := snap.Player
	if p.Alive {
		status := "❤️ "
		if p.Immortal {
			status = "✨"
		}
		parts = append(parts,
			fmt.Sprintf("%s lives  %d", status, p.Lives),
			fmt.Sprintf("💣 bombs  %d/%d", p.BombCapacity-p.ActiveBombs, p.BombCapacity),
			fmt.Sprintf("🔥 range  %d", p.BlastRange),
			fmt.Sprintf("» speed  %.0f", p.Speed),
		)
	}
	parts = append(parts, fmt.Sprintf("👾 creeps %d", snap.CreepsLeft))
	parts = append(parts, labelStyle.Render(fmt.Sprintf("time %s", snap.Elapsed.Truncate(time.Second))))

	parts = append(parts, "")
	parts = append(parts, helpStyle.Render("WASD/Arrows: Move | X: Stop | Space: Bomb | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
