package game

import (
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// AnimateSystem advances walk cycles. A standing entity rests on frame 0.
type AnimateSystem struct {
	w *World
}

// NewAnimateSystem creates the system.
func NewAnimateSystem(w *World) *AnimateSystem {
	return &AnimateSystem{w: w}
}

// Update steps every moving entity's frame by dt.
func (s *AnimateSystem) Update(dt time.Duration) {
	for _, e := range ecs.Query(s.w.Animations, s.w.Movables) {
		a, _ := s.w.Animations.Get(e)
		m, _ := s.w.Movables.Get(e)

		if m.Direction == DirNone {
			a.Frame = 0
			a.Elapsed = 0
			continue
		}
		if a.Row != m.Direction {
			a.Row = m.Direction
			a.Frame = 0
			a.Elapsed = 0
		}
		a.Elapsed += dt
		for a.Elapsed >= a.FrameTime {
			a.Elapsed -= a.FrameTime
			a.Frame = (a.Frame + 1) % a.Frames
		}
	}
}
