package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/bomberman-ecs/internal/game"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

func TestSimulateRuns(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	engine, err := game.NewEngine(cfg, resource.Default(), nil)
	require.NoError(t, err)

	b := &bot{rng: rand.New(rand.NewSource(3)), bombEvery: 30, turnEvery: 10}
	first := engine.Snapshot()
	last := simulate(engine, b, 600)

	assert.Positive(t, last.Tick)
	assert.LessOrEqual(t, last.Tick, uint64(600))
	assert.Positive(t, b.bombs)
	assert.LessOrEqual(t, countTiles(last, game.ExplodableBlock), countTiles(first, game.ExplodableBlock))
	if last.Status == game.StatusRunning {
		assert.Equal(t, uint64(600), last.Tick)
	}
}

func TestBotHeadsIntoOpenTiles(t *testing.T) {
	snap := game.Snapshot{
		Width:    3,
		Height:   3,
		TileSize: 64,
		Tiles: [][]game.TileType{
			{game.SolidBlock, game.SolidBlock, game.SolidBlock},
			{game.SolidBlock, game.TileNone, game.TileNone},
			{game.SolidBlock, game.SolidBlock, game.SolidBlock},
		},
		Entities: []game.EntityView{{
			Position: game.Vec2{X: 81, Y: 81},
			Size:     game.Vec2{X: 30, Y: 30},
			Layer:    game.LayerPlayer,
		}},
		Player: game.PlayerView{Alive: true, BombCapacity: 1},
	}
	b := &bot{rng: rand.New(rand.NewSource(1)), bombEvery: 2, turnEvery: 1}

	assert.Equal(t, []game.Action{
		{Type: game.ActionPlaceBomb},
		{Type: game.ActionMove, Dir: game.DirRight},
	}, b.act(0, snap))
	assert.Equal(t, []game.Action{{Type: game.ActionMove, Dir: game.DirRight}}, b.act(1, snap))

	snap.Player.Alive = false
	assert.Empty(t, b.act(2, snap))
}
