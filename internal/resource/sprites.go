package resource

import "github.com/charmbracelet/lipgloss"

const floor = "#1a1a2e"

// Default returns a holder with every sprite the game uses.
func Default() *Holder {
	h := NewHolder()

	h.Load(BackgroundTile, "  ", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color(floor)))

	h.Load(SolidBlock, "██", lipgloss.NewStyle().
		Background(lipgloss.Color("#3a3a3a")).
		Foreground(lipgloss.Color("#555555")))

	h.Load(ExplodableBlock, "▒▒", lipgloss.NewStyle().
		Background(lipgloss.Color("#8B6914")).
		Foreground(lipgloss.Color("#A0772B")))

	h.Load(BombermanFront, "☻ ", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#00ff88")).
		Bold(true))

	h.Load(BombermanImmortal, "☺ ", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#88ffcc")).
		Blink(true))

	h.Load(Creep, "ʘʘ", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#ff44ff")).
		Bold(true))

	h.Load(Bomb, "()", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#ff4444")).
		Bold(true))

	h.Load(Flame, "░░", lipgloss.NewStyle().
		Background(lipgloss.Color("#ff6600")).
		Foreground(lipgloss.Color("#ffcc00")).
		Bold(true))

	h.Load(PowerUpSpeed, "»»", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#44aaff")).
		Bold(true))

	h.Load(PowerUpBomb, "+●", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#ffff44")).
		Bold(true))

	h.Load(PowerUpRange, "+✹", lipgloss.NewStyle().
		Background(lipgloss.Color(floor)).
		Foreground(lipgloss.Color("#ff8844")).
		Bold(true))

	return h
}
