package game

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// Map mirrors tile classification in a grid for O(1) neighbour lookups. It
// is a read-side cache of the Tile entities: World.destroyBlock is the only
// writer after generation.
type Map struct {
	Width    int
	Height   int
	TileSize float64
	tiles    [][]TileType
	blocks   [][]ecs.Entity // Block entity standing on the cell
}

// NewMap creates an all-None grid.
func NewMap(width, height int, tileSize float64) *Map {
	m := &Map{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		tiles:    make([][]TileType, height),
		blocks:   make([][]ecs.Entity, height),
	}
	for r := range m.tiles {
		m.tiles[r] = make([]TileType, width)
		m.blocks[r] = make([]ecs.Entity, width)
	}
	return m
}

// InBounds reports whether c lies on the grid.
func (m *Map) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < m.Height && c.Col >= 0 && c.Col < m.Width
}

// At returns the tile type at c. Off-grid cells read as SolidBlock.
func (m *Map) At(c Cell) TileType {
	if !m.InBounds(c) {
		return SolidBlock
	}
	return m.tiles[c.Row][c.Col]
}

// Block returns the block entity on c, or ecs.Nil.
func (m *Map) Block(c Cell) ecs.Entity {
	if !m.InBounds(c) {
		return ecs.Nil
	}
	return m.blocks[c.Row][c.Col]
}

func (m *Map) set(c Cell, t TileType, block ecs.Entity) {
	m.tiles[c.Row][c.Col] = t
	m.blocks[c.Row][c.Col] = block
}

// CellOf returns the cell containing point p.
func (m *Map) CellOf(p Vec2) Cell {
	return Cell{
		Row: int(math.Floor(p.Y / m.TileSize)),
		Col: int(math.Floor(p.X / m.TileSize)),
	}
}

// CellOrigin returns the top-left pixel of c.
func (m *Map) CellOrigin(c Cell) Vec2 {
	return Vec2{X: float64(c.Col) * m.TileSize, Y: float64(c.Row) * m.TileSize}
}

// CellCenter returns the middle pixel of c.
func (m *Map) CellCenter(c Cell) Vec2 {
	return m.CellOrigin(c).Add(Vec2{X: m.TileSize / 2, Y: m.TileSize / 2})
}

// CellRect returns the full tile rectangle of c.
func (m *Map) CellRect(c Cell) Transform {
	return Transform{Size: Vec2{X: m.TileSize, Y: m.TileSize}, Position: m.CellOrigin(c)}
}

// Centered returns a rectangle of the given square size centred on c.
func (m *Map) Centered(c Cell, size float64) Transform {
	half := size / 2
	return Transform{
		Size:     Vec2{X: size, Y: size},
		Position: m.CellCenter(c).Sub(Vec2{X: half, Y: half}),
	}
}

// Tiles returns a copy of the grid.
func (m *Map) Tiles() [][]TileType {
	out := make([][]TileType, m.Height)
	for r := range m.tiles {
		out[r] = make([]TileType, m.Width)
		copy(out[r], m.tiles[r])
	}
	return out
}

// Fingerprint hashes the grid layout. Two maps built from the same seed and
// config share a fingerprint.
func (m *Map) Fingerprint() uint64 {
	d := xxhash.New()
	row := make([]byte, m.Width)
	for r := range m.tiles {
		for c, t := range m.tiles[r] {
			row[c] = byte(t)
		}
		_, _ = d.Write(row)
	}
	return d.Sum64()
}
