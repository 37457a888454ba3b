package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amalg/bomberman-ecs/internal/ecs"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

func testSprites(t *testing.T) spriteSet {
	t.Helper()
	set, err := loadSprites(resource.Default())
	require.NoError(t, err)
	return set
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Creeps = 0
	cfg.PowerUpChance = 0
	return cfg
}

// layoutWorld builds a world from rows of '#' (solid), '*' (explodable) and
// '.' (floor).
func layoutWorld(t *testing.T, cfg Config, rows ...string) *World {
	t.Helper()
	cfg.HeightTiles = len(rows)
	cfg.WidthTiles = len(rows[0])
	w := NewWorld(cfg, testSprites(t))
	for r, row := range rows {
		require.Len(t, row, cfg.WidthTiles)
		for c, ch := range row {
			cell := Cell{Row: r, Col: c}
			switch ch {
			case '#':
				w.spawnBlock(cell, SolidBlock)
			case '*':
				w.spawnFloor(cell)
				w.spawnBlock(cell, ExplodableBlock)
			default:
				w.spawnFloor(cell)
			}
		}
	}
	return w
}

// placePlayer spawns the player centred on c.
func placePlayer(w *World, c Cell) ecs.Entity {
	p := w.spawnPlayer()
	t, _ := w.Transforms.Get(p)
	*t = w.Map.Centered(c, w.cfg.PlayerSize)
	pl, _ := w.Players.Get(p)
	pl.Spawn = t.Position
	return p
}

func newExplosions(w *World) *ExplosionSystem {
	return NewExplosionSystem(w, &w.BombSpawns, rand.New(rand.NewSource(1)), zap.NewNop())
}

func armedBomb(t *testing.T, w *World, owner ecs.Entity, c Cell, blastRange int) ecs.Entity {
	t.Helper()
	b := w.spawnBomb(owner, c, blastRange)
	if p, ok := w.Players.Get(owner); ok {
		p.ActiveBombs++
	}
	return b
}

func detonateNow(w *World, b ecs.Entity) {
	bomb, _ := w.Bombs.Get(b)
	bomb.Fuse = time.Nanosecond
}
