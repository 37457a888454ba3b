package game

import (
	"math/rand"
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// NPCSystem steers creeps from tile centre to tile centre. A creep that
// reaches its target cell snaps onto it and picks the next free neighbour,
// preferring to keep its heading. Creeps are not Collidable; they avoid
// blocks and bombs by looking at the map instead.
type NPCSystem struct {
	w   *World
	rng *rand.Rand
}

// NewNPCSystem creates the system. rng drives the turn decisions.
func NewNPCSystem(w *World, rng *rand.Rand) *NPCSystem {
	return &NPCSystem{w: w, rng: rng}
}

// Update re-targets creeps that reached their cell or are blocked.
func (s *NPCSystem) Update(dt time.Duration) {
	for _, e := range ecs.Query(s.w.NPCs, s.w.Transforms, s.w.Movables) {
		n, _ := s.w.NPCs.Get(e)
		t, _ := s.w.Transforms.Get(e)
		m, _ := s.w.Movables.Get(e)

		// A bomb dropped on the target sends the creep back where it came from
		if m.Direction != DirNone && !s.walkable(n.Target) {
			back := m.Direction.Opposite()
			n.Target = n.Target.Step(back)
			s.w.setDirection(e, back)
			continue
		}

		target := s.w.Map.CellCenter(n.Target)
		if m.Direction != DirNone && !reached(t.Center(), target, m, dt) {
			continue
		}

		t.Position = target.Sub(t.Size.Scale(0.5))
		next := s.choose(n.Target, m.Direction)
		s.w.setDirection(e, next)
		if next != DirNone {
			n.Target = n.Target.Step(next)
		}
	}
}

// reached reports whether moving one more tick would carry the centre onto
// or past target.
func reached(center, target Vec2, m *Movable, dt time.Duration) bool {
	u := m.Direction.Unit()
	remaining := (target.X-center.X)*u.X + (target.Y-center.Y)*u.Y
	step := (abs64(u.X)*m.Velocity.X + abs64(u.Y)*m.Velocity.Y) * dt.Seconds()
	return remaining <= step
}

func (s *NPCSystem) choose(from Cell, heading Direction) Direction {
	var open []Direction
	for _, d := range Cardinals {
		if s.walkable(from.Step(d)) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return DirNone
	}

	keep := false
	for _, d := range open {
		if d == heading {
			keep = true
		}
	}
	if keep && s.rng.Float64() >= s.w.cfg.CreepTurnChance {
		return heading
	}

	// Turning back is the last resort
	turns := open[:0:0]
	for _, d := range open {
		if heading == DirNone || d != heading.Opposite() {
			turns = append(turns, d)
		}
	}
	if len(turns) == 0 {
		return heading.Opposite()
	}
	return turns[s.rng.Intn(len(turns))]
}

func (s *NPCSystem) walkable(c Cell) bool {
	return s.w.Map.At(c) == TileNone && s.w.bombAt(c) == ecs.Nil
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
