package game

import (
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// System is one stage of the tick pipeline.
type System interface {
	Update(dt time.Duration)
}

// MoveSystem advances every Transform+Movable entity along its heading.
// Clamping against walls is left to CollisionSystem.
type MoveSystem struct {
	w *World
}

// NewMoveSystem creates the system.
func NewMoveSystem(w *World) *MoveSystem {
	return &MoveSystem{w: w}
}

// Update moves each entity by unit(direction) * velocity * dt.
func (s *MoveSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	for _, e := range ecs.Query(s.w.Transforms, s.w.Movables) {
		t, _ := s.w.Transforms.Get(e)
		m, _ := s.w.Movables.Get(e)
		u := m.Direction.Unit()
		t.Position.X += u.X * m.Velocity.X * secs
		t.Position.Y += u.Y * m.Velocity.Y * secs
	}
}
