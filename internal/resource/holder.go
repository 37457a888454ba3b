// Package resource holds the sprites used to decorate entities when they are
// created. The simulation only carries sprite handles around; it never looks
// inside them.
package resource

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ID names a sprite.
type ID int

const (
	BackgroundTile ID = iota
	SolidBlock
	ExplodableBlock
	BombermanFront
	BombermanImmortal
	Creep
	Bomb
	Flame
	PowerUpSpeed
	PowerUpBomb
	PowerUpRange
)

var idNames = map[ID]string{
	BackgroundTile:    "background-tile",
	SolidBlock:        "solid-block",
	ExplodableBlock:   "explodable-block",
	BombermanFront:    "bomberman-front",
	BombermanImmortal: "bomberman-immortal",
	Creep:             "creep",
	Bomb:              "bomb",
	Flame:             "flame",
	PowerUpSpeed:      "powerup-speed",
	PowerUpBomb:       "powerup-bomb",
	PowerUpRange:      "powerup-range",
}

func (id ID) String() string {
	if n, ok := idNames[id]; ok {
		return n
	}
	return fmt.Sprintf("resource(%d)", int(id))
}

// ErrNotFound is returned by Get for an id that was never loaded.
var ErrNotFound = errors.New("resource not found")

// Sprite is a two-cell terminal glyph with its style.
type Sprite struct {
	ID    ID
	Glyph string
	Style lipgloss.Style
}

// Render draws the sprite.
func (s Sprite) Render() string {
	return s.Style.Render(s.Glyph)
}

// Holder maps ids to loaded sprites.
type Holder struct {
	sprites map[ID]Sprite
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{sprites: make(map[ID]Sprite)}
}

// Load registers a sprite under id, replacing any previous one.
func (h *Holder) Load(id ID, glyph string, style lipgloss.Style) {
	h.sprites[id] = Sprite{ID: id, Glyph: glyph, Style: style}
}

// Get returns the sprite for id.
func (h *Holder) Get(id ID) (Sprite, error) {
	s, ok := h.sprites[id]
	if !ok {
		return Sprite{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s, nil
}
