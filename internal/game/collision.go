package game

import (
	"math"
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// collisionInfo is the correction that pushes the first rectangle out of the
// second along the axis of least penetration.
type collisionInfo struct {
	correction Vec2
	direction  Direction
}

// resolveOverlap tests a against b and, when they overlap (edges touching
// counts), returns the minimum translation for a.
//
// The four quadrants compare w*dy against h*dx, which orders the penetration
// depths without dividing. Directions name the side of a that was hit, so a
// push towards +y is labelled Up.
func resolveOverlap(a, b Transform) (collisionInfo, bool) {
	w := 0.5 * (a.Size.X + b.Size.X)
	h := 0.5 * (a.Size.Y + b.Size.Y)
	ca, cb := a.Center(), b.Center()
	dx := ca.X - cb.X
	dy := ca.Y - cb.Y

	if math.Abs(dx) > w || math.Abs(dy) > h {
		return collisionInfo{}, false
	}

	wy := w * dy
	hx := h * dx
	if wy > hx {
		if wy > -hx {
			return collisionInfo{Vec2{X: 0, Y: h - math.Abs(dy)}, DirUp}, true
		}
		return collisionInfo{Vec2{X: -(w - math.Abs(dx)), Y: 0}, DirRight}, true
	}
	if wy > -hx {
		return collisionInfo{Vec2{X: w - math.Abs(dx), Y: 0}, DirLeft}, true
	}
	return collisionInfo{Vec2{X: 0, Y: -(h - math.Abs(dy))}, DirDown}, true
}

// overlaps is the resolveOverlap test without the correction.
func overlaps(a, b Transform) bool {
	ca, cb := a.Center(), b.Center()
	return math.Abs(ca.X-cb.X) <= 0.5*(a.Size.X+b.Size.X) &&
		math.Abs(ca.Y-cb.Y) <= 0.5*(a.Size.Y+b.Size.Y)
}

// intersects is a strict overlap: rectangles sharing only an edge do not
// intersect.
func intersects(a, b Transform) bool {
	ca, cb := a.Center(), b.Center()
	return math.Abs(ca.X-cb.X) < 0.5*(a.Size.X+b.Size.X) &&
		math.Abs(ca.Y-cb.Y) < 0.5*(a.Size.Y+b.Size.Y)
}

// CollisionSystem keeps players out of every other Collidable.
//
// Each player is tested against the other collidables in creation order and
// every overlap is corrected on the spot, so a later test sees the already
// corrected position. Each correction overwrites the reported direction, so
// the last one in the pass wins. The outcome therefore depends on creation
// order when several overlaps happen in the same tick.
type CollisionSystem struct {
	w           *World
	moveChanges *ecs.Queue[MoveChangeEvent]
}

// NewCollisionSystem creates the system. moveChanges is drained at the start
// of every Update.
func NewCollisionSystem(w *World, moveChanges *ecs.Queue[MoveChangeEvent]) *CollisionSystem {
	return &CollisionSystem{w: w, moveChanges: moveChanges}
}

// Update applies pending move changes, then resolves every player against
// every other collidable.
func (s *CollisionSystem) Update(time.Duration) {
	s.handleMoveChanges()

	for _, p := range ecs.Query(s.w.Players, s.w.Collidables) {
		pc, ok := s.w.Collidables.Get(p)
		if !ok {
			continue
		}
		pt, _ := s.w.Transforms.Get(p)
		pc.Direction = DirNone

		for _, o := range ecs.Query(s.w.Collidables) {
			if o == p {
				continue
			}
			oc, ok := s.w.Collidables.Get(o)
			if !ok {
				continue
			}
			ot, _ := s.w.Transforms.Get(o)
			s.forgetDeadSpawner(oc)

			info, hit := resolveOverlap(*pt, *ot)
			skip := oc.Spawner == p
			switch {
			case hit && !skip:
				pt.Position = pt.Position.Add(info.correction)
				pc.Direction = info.direction
			case !hit && skip:
				// Separated from its own bomb: collide normally from now on
				oc.Spawner = ecs.Nil
			}
		}
	}
}

// handleMoveChanges resets the collision result of every entity that changed
// heading, keeping the spawner reference.
func (s *CollisionSystem) handleMoveChanges() {
	s.moveChanges.Drain(func(ev MoveChangeEvent) {
		if c, ok := s.w.Collidables.Get(ev.Entity); ok {
			*c = Collidable{Spawner: c.Spawner}
		}
	})
}

func (s *CollisionSystem) forgetDeadSpawner(c *Collidable) {
	if c.Spawner != ecs.Nil && !s.w.Registry.Alive(c.Spawner) {
		c.Spawner = ecs.Nil
	}
}
