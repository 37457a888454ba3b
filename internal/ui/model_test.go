package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/bomberman-ecs/internal/game"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

type fakeEngine struct {
	actions  []game.Action
	restarts int
}

func (f *fakeEngine) EnqueueAction(a game.Action) { f.actions = append(f.actions, a) }
func (f *fakeEngine) Restart() { f.restarts++ }

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "up", "down", "left", "right":
		msg = tea.KeyMsg{Type: map[string]tea.KeyType{
			"up":    tea.KeyUp,
			"down":  tea.KeyDown,
			"left":  tea.KeyLeft,
			"right": tea.KeyRight,
		}[key]}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func withSnapshot(m Model, s game.Snapshot) Model {
	next, _ := m.Update(snapshotMsg(s))
	return next.(Model)
}

func TestKeysBecomeActions(t *testing.T) {
	eng := &fakeEngine{}
	m := NewModel(eng, nil)

	m = press(m, "d")
	m = press(m, "up")
	m = press(m, " ")
	m = press(m, "x")

	assert.Equal(t, []game.Action{
		{Type: game.ActionMove, Dir: game.DirRight},
		{Type: game.ActionMove, Dir: game.DirUp},
		{Type: game.ActionPlaceBomb},
		{Type: game.ActionStop},
	}, eng.actions)
}

func TestSameDirectionStops(t *testing.T) {
	eng := &fakeEngine{}
	m := NewModel(eng, nil)
	m = withSnapshot(m, game.Snapshot{Player: game.PlayerView{Alive: true, Heading: game.DirLeft}})

	m = press(m, "a")
	m = press(m, "right")
	assert.Equal(t, []game.Action{
		{Type: game.ActionStop},
		{Type: game.ActionMove, Dir: game.DirRight},
	}, eng.actions)
}

func TestEnterRestartsFinishedGame(t *testing.T) {
	eng := &fakeEngine{}
	m := NewModel(eng, nil)

	m = withSnapshot(m, game.Snapshot{Status: game.StatusRunning})
	m = press(m, "enter")
	assert.Zero(t, eng.restarts)

	m = withSnapshot(m, game.Snapshot{Status: game.StatusLost})
	press(m, "enter")
	assert.Equal(t, 1, eng.restarts)
}

func TestQuit(t *testing.T) {
	m := NewModel(&fakeEngine{}, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, next.View(), "Goodbye")
}

func TestFeedKeepsLatest(t *testing.T) {
	ch := make(chan game.Snapshot, 1)
	feed := Feed(ch)
	feed(game.Snapshot{Tick: 1})
	feed(game.Snapshot{Tick: 2})
	feed(game.Snapshot{Tick: 3})

	require.Len(t, ch, 1)
	assert.Equal(t, uint64(3), (<-ch).Tick)
}

func TestFeedUnbufferedNeverBlocks(t *testing.T) {
	ch := make(chan game.Snapshot)
	feed := Feed(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		feed(game.Snapshot{Tick: 1})
		feed(game.Snapshot{Tick: 2})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed blocked without a reader")
	}
}

func TestWaitForSnapshot(t *testing.T) {
	ch := make(chan game.Snapshot, 1)
	ch <- game.Snapshot{Tick: 9}
	msg := waitForSnapshot(ch)()
	assert.Equal(t, snapshotMsg(game.Snapshot{Tick: 9}), msg)

	close(ch)
	assert.Equal(t, closedMsg{}, waitForSnapshot(ch)())
}

func TestRenderBoardDrawsTopLayer(t *testing.T) {
	sprites := resource.Default()
	sprite := func(id resource.ID) resource.Sprite {
		s, err := sprites.Get(id)
		require.NoError(t, err)
		return s
	}

	snap := &game.Snapshot{
		Width:    2,
		Height:   1,
		TileSize: 64,
		Tiles:    [][]game.TileType{{game.TileNone, game.TileNone}},
		Entities: []game.EntityView{
			{Position: game.Vec2{}, Size: game.Vec2{X: 64, Y: 64}, Sprite: sprite(resource.BackgroundTile), Layer: game.LayerFloor},
			{Position: game.Vec2{X: 8, Y: 8}, Size: game.Vec2{X: 48, Y: 48}, Sprite: sprite(resource.Bomb), Layer: game.LayerBomb},
			{Position: game.Vec2{X: 17, Y: 17}, Size: game.Vec2{X: 30, Y: 30}, Sprite: sprite(resource.BombermanFront), Layer: game.LayerPlayer},
		},
	}
	out := RenderBoard(snap)
	assert.Contains(t, out, strings.TrimSpace(sprite(resource.BombermanFront).Glyph))
	assert.NotContains(t, out, sprite(resource.Bomb).Glyph)
	assert.Equal(t, 1, strings.Count(out, "\n")+1)

	assert.Equal(t, "Waiting for game state...", RenderBoard(nil))
}

func TestRenderHUD(t *testing.T) {
	hud := RenderHUD(&game.Snapshot{
		SessionID:  "0123456789abcdef",
		Status:     game.StatusWon,
		CreepsLeft: 0,
		Player:     game.PlayerView{Alive: true, Lives: 2, BombCapacity: 3, ActiveBombs: 1, BlastRange: 4},
	})
	assert.Contains(t, hud, "01234567")
	assert.NotContains(t, hud, "89abcdef")
	assert.Contains(t, hud, "ALL CREEPS DESTROYED")
	assert.Contains(t, hud, "bombs  2/3")
	assert.Empty(t, RenderHUD(nil))
}
