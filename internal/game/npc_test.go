package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

func TestCreepsStayOnFreeCells(t *testing.T) {
	w := layoutWorld(t, testConfig(),
		"#######",
		"#.....#",
		"#.#*#.#",
		"#.....#",
		"#.#.#*#",
		"#.....#",
		"#######",
	)
	creeps := []Cell{{Row: 1, Col: 1}, {Row: 5, Col: 5}, {Row: 3, Col: 3}}
	for _, c := range creeps {
		w.spawnCreep(c)
	}
	npcs := NewNPCSystem(w, rand.New(rand.NewSource(7)))
	move := NewMoveSystem(w)

	moved := false
	for i := 0; i < 3000; i++ {
		npcs.Update(16 * time.Millisecond)
		move.Update(16 * time.Millisecond)
		w.MoveChanges.Drain(func(MoveChangeEvent) {})

		for _, e := range w.NPCs.Entities() {
			tr, _ := w.Transforms.Get(e)
			for _, corner := range []Vec2{
				tr.Position,
				tr.Position.Add(Vec2{X: tr.Size.X}),
				tr.Position.Add(Vec2{Y: tr.Size.Y}),
				tr.Position.Add(tr.Size),
			} {
				c := w.Map.CellOf(corner)
				require.Equal(t, TileNone, w.Map.At(c), "creep %d entered %+v on tick %d", e, c, i)
			}
			if w.Map.CellOf(tr.Center()) != creeps[0] {
				moved = true
			}
		}
	}
	assert.True(t, moved)
}

func TestCreepTurnsBackFromBomb(t *testing.T) {
	w := layoutWorld(t, testConfig(), "#####", "#...#", "#####")
	e := w.spawnCreep(Cell{Row: 1, Col: 1})
	n, _ := w.NPCs.Get(e)
	m, _ := w.Movables.Get(e)
	m.Direction = DirRight
	n.Target = Cell{Row: 1, Col: 2}

	w.spawnBomb(ecs.Nil, Cell{Row: 1, Col: 2}, 1)
	NewNPCSystem(w, rand.New(rand.NewSource(1))).Update(16 * time.Millisecond)

	assert.Equal(t, DirLeft, m.Direction)
	assert.Equal(t, Cell{Row: 1, Col: 1}, n.Target)
}

func TestBoxedCreepStands(t *testing.T) {
	w := layoutWorld(t, testConfig(), "###", "#.#", "###")
	e := w.spawnCreep(Cell{Row: 1, Col: 1})
	NewNPCSystem(w, rand.New(rand.NewSource(1))).Update(16 * time.Millisecond)

	m, _ := w.Movables.Get(e)
	assert.Equal(t, DirNone, m.Direction)
}
