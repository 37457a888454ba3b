package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoveSystem(t *testing.T) {
	w := layoutWorld(t, testConfig(), "###", "#.#", "###")
	p := placePlayer(w, Cell{Row: 1, Col: 1})
	m, _ := w.Movables.Get(p)
	m.Velocity = Vec2{X: 128, Y: 64}
	pt, _ := w.Transforms.Get(p)
	start := pt.Position
	sys := NewMoveSystem(w)

	sys.Update(500 * time.Millisecond)
	assert.Equal(t, start, pt.Position, "standing still")

	m.Direction = DirRight
	sys.Update(500 * time.Millisecond)
	assert.InDelta(t, start.X+64, pt.Position.X, 1e-9)
	assert.InDelta(t, start.Y, pt.Position.Y, 1e-9)

	m.Direction = DirUp
	sys.Update(500 * time.Millisecond)
	assert.InDelta(t, start.Y-32, pt.Position.Y, 1e-9)

	// No clamping: walking into the wall is the collision system's problem
	m.Direction = DirLeft
	sys.Update(2 * time.Second)
	assert.InDelta(t, start.X+64-256, pt.Position.X, 1e-9)
}

func TestSetDirectionEmitsOnChange(t *testing.T) {
	w := layoutWorld(t, testConfig(), "...")
	p := placePlayer(w, Cell{Row: 0, Col: 1})
	w.MoveChanges.Drain(func(MoveChangeEvent) {})

	w.setDirection(p, DirLeft)
	w.setDirection(p, DirLeft)
	w.setDirection(p, DirNone)

	var got []Direction
	w.MoveChanges.Drain(func(ev MoveChangeEvent) {
		assert.Equal(t, p, ev.Entity)
		got = append(got, ev.Direction)
	})
	assert.Equal(t, []Direction{DirLeft, DirNone}, got)
}

func TestAnimateSystem(t *testing.T) {
	w := layoutWorld(t, testConfig(), "...")
	p := placePlayer(w, Cell{Row: 0, Col: 1})
	a, _ := w.Animations.Get(p)
	a.FrameTime = 100 * time.Millisecond
	sys := NewAnimateSystem(w)

	w.setDirection(p, DirRight)
	sys.Update(250 * time.Millisecond)
	assert.Equal(t, 2, a.Frame)
	assert.Equal(t, DirRight, a.Row)

	sys.Update(700 * time.Millisecond)
	assert.Equal(t, (2+7)%a.Frames, a.Frame)

	w.setDirection(p, DirNone)
	sys.Update(100 * time.Millisecond)
	assert.Zero(t, a.Frame)
}
