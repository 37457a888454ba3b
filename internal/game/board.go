package game

import (
	"math/rand"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// buildMap lays out the level and returns the free cells left after
// explodable blocks were placed.
//
// Layout rules:
//   - Border is all SolidBlock
//   - SolidBlock at every interior cell where both row and column are even
//   - A shuffled ExplodableFill share of the remaining cells becomes
//     ExplodableBlock, unless it lies within KeepClearTiles of the player's
//     start on both axes
func (w *World) buildMap(rng *rand.Rand, start Cell) []Cell {
	cfg := w.cfg
	var blank []Cell
	for r := 0; r < cfg.HeightTiles; r++ {
		for c := 0; c < cfg.WidthTiles; c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case r == 0 || c == 0 || r == cfg.HeightTiles-1 || c == cfg.WidthTiles-1:
				// Border walls
				w.spawnBlock(cell, SolidBlock)
			case r%2 == 0 && c%2 == 0:
				// Interior pillar pattern
				w.spawnBlock(cell, SolidBlock)
			default:
				w.spawnFloor(cell)
				blank = append(blank, cell)
			}
		}
	}

	rng.Shuffle(len(blank), func(i, j int) { blank[i], blank[j] = blank[j], blank[i] })
	split := int(float64(len(blank)) * cfg.ExplodableFill)

	free := make([]Cell, 0, len(blank)-split)
	free = append(free, blank[split:]...)
	for _, cell := range blank[:split] {
		if abs(cell.Row-start.Row) >= cfg.KeepClearTiles || abs(cell.Col-start.Col) >= cfg.KeepClearTiles {
			w.spawnBlock(cell, ExplodableBlock)
			continue
		}
		free = append(free, cell)
	}
	return free
}

// spawnCreeps places up to n creeps on free cells at least minTiles
// (manhattan) away from start.
func (w *World) spawnCreeps(rng *rand.Rand, free []Cell, start Cell, n, minTiles int) []ecs.Entity {
	candidates := make([]Cell, 0, len(free))
	for _, c := range free {
		if abs(c.Row-start.Row)+abs(c.Col-start.Col) >= minTiles {
			candidates = append(candidates, c)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if n > len(candidates) {
		n = len(candidates)
	}

	creeps := make([]ecs.Entity, 0, n)
	for _, c := range candidates[:n] {
		creeps = append(creeps, w.spawnCreep(c))
	}
	return creeps
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
