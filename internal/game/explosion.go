package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/amalg/bomberman-ecs/internal/ecs"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

// ExplosionSystem owns the bomb lifecycle: it places bombs requested through
// the spawn queue, counts fuses down, expands blasts with chain reactions and
// applies lethal contact to players and creeps.
type ExplosionSystem struct {
	w   *World
	cfg Config
	rng *rand.Rand
	log *zap.Logger

	spawns *ecs.Queue[SpawnBombEvent]
}

// NewExplosionSystem creates the system. Bomb requests are read from spawns;
// rng decides power-up drops.
func NewExplosionSystem(w *World, spawns *ecs.Queue[SpawnBombEvent], rng *rand.Rand, log *zap.Logger) *ExplosionSystem {
	return &ExplosionSystem{
		w:      w,
		cfg:    w.cfg,
		rng:    rng,
		log:    log,
		spawns: spawns,
	}
}

// Update runs one step of the bomb lifecycle: placement, timers,
// detonations and lethal contact.
func (s *ExplosionSystem) Update(dt time.Duration) {
	s.handleSpawnEvents()
	s.tickImmortality(dt)
	s.tickFlames(dt)
	s.tickFuses(dt)
	s.detonate()
	s.applyLethalContact()
}

// handleSpawnEvents places a bomb on the cell under each requesting player,
// unless the player is out of bombs or the cell is taken.
func (s *ExplosionSystem) handleSpawnEvents() {
	s.spawns.Drain(func(ev SpawnBombEvent) {
		p, ok := s.w.Players.Get(ev.Spawner)
		if !ok {
			return
		}
		t, ok := s.w.Transforms.Get(ev.Spawner)
		if !ok {
			return
		}
		if p.ActiveBombs >= p.BombCapacity {
			return
		}
		cell := s.w.Map.CellOf(t.Center())
		if s.w.Map.At(cell) != TileNone || s.w.bombAt(cell) != ecs.Nil {
			return
		}

		b := s.w.spawnBomb(ev.Spawner, cell, p.BlastRange)
		p.ActiveBombs++
		s.log.Debug("bomb placed",
			zap.Uint32("bomb", uint32(b)),
			zap.Int("row", cell.Row),
			zap.Int("col", cell.Col),
			zap.Int("range", p.BlastRange),
		)
	})
}

func (s *ExplosionSystem) tickImmortality(dt time.Duration) {
	s.w.Immortals.Each(func(e ecs.Entity, im *Immortal) {
		im.Remaining -= dt
		if im.Remaining > 0 {
			return
		}
		_ = s.w.Immortals.Remove(e)
		if s.w.Players.Has(e) {
			s.w.draw(e, resource.BombermanFront, LayerPlayer)
		}
	})
}

func (s *ExplosionSystem) tickFlames(dt time.Duration) {
	s.w.Flames.Each(func(e ecs.Entity, f *Flame) {
		f.Remaining -= dt
		if f.Remaining <= 0 {
			s.w.Registry.Destroy(e)
		}
	})
}

func (s *ExplosionSystem) tickFuses(dt time.Duration) {
	s.w.Bombs.Each(func(_ ecs.Entity, b *Bomb) {
		if b.State != BombArmed {
			return
		}
		b.Fuse -= dt
		if b.Fuse <= 0 {
			b.State = BombDetonating
		}
	})
}

// detonate resolves every Detonating bomb. Bombs caught in a blast switch to
// Detonating and join the same pass, so a chain resolves within one tick.
func (s *ExplosionSystem) detonate() {
	var pending []ecs.Entity
	s.w.Bombs.Each(func(e ecs.Entity, b *Bomb) {
		if b.State == BombDetonating {
			pending = append(pending, e)
		}
	})

	for len(pending) > 0 {
		e := pending[0]
		pending = pending[1:]

		b, ok := s.w.Bombs.Get(e)
		if !ok || b.State != BombDetonating {
			continue
		}
		b.State = BombConsumed

		cells, destroyed := s.blast(b)
		for _, c := range cells {
			s.ignite(c)
			if other := s.w.bombAt(c); other != ecs.Nil {
				if ob, _ := s.w.Bombs.Get(other); ob.State == BombArmed {
					ob.State = BombDetonating
					pending = append(pending, other)
				}
			}
		}
		for _, c := range destroyed {
			s.maybeDropPowerUp(c)
		}

		if p, ok := s.w.Players.Get(b.Owner); ok && p.ActiveBombs > 0 {
			p.ActiveBombs--
		}
		s.log.Debug("bomb detonated",
			zap.Uint32("bomb", uint32(e)),
			zap.Int("cells", len(cells)),
			zap.Int("blocks", len(destroyed)),
		)
		s.w.Registry.Destroy(e)
	}
}

// blast walks the four rays of b. A ray stops before a SolidBlock, or on the
// first ExplodableBlock, which it destroys. It returns every blast cell,
// centre included, and the cells whose block was destroyed.
func (s *ExplosionSystem) blast(b *Bomb) (cells, destroyed []Cell) {
	cells = append(cells, b.Cell)
	for _, d := range Cardinals {
		c := b.Cell
		for dist := 1; dist <= b.Range; dist++ {
			c = c.Step(d)
			if !s.w.Map.InBounds(c) {
				break
			}
			tile := s.w.Map.At(c)
			if tile == SolidBlock {
				break
			}
			cells = append(cells, c)
			if tile == ExplodableBlock {
				s.w.destroyBlock(c)
				destroyed = append(destroyed, c)
				break
			}
		}
	}
	return cells, destroyed
}

// ignite puts a flame on c, or refreshes the one already there, and burns
// any pickup lying on the cell.
func (s *ExplosionSystem) ignite(c Cell) {
	if f := s.w.flameAt(c); f != ecs.Nil {
		fl, _ := s.w.Flames.Get(f)
		fl.Remaining = s.cfg.FlameDuration
	} else {
		s.w.spawnFlame(c, s.cfg.FlameDuration)
	}

	rect := s.w.Map.CellRect(c)
	for _, e := range ecs.Query(s.w.PowerUps, s.w.Transforms) {
		if t, _ := s.w.Transforms.Get(e); intersects(*t, rect) {
			s.w.Registry.Destroy(e)
		}
	}
}

func (s *ExplosionSystem) maybeDropPowerUp(c Cell) {
	if s.rng.Float64() >= s.cfg.PowerUpChance {
		return
	}
	kind := PowerUpKind(s.rng.Intn(3))
	s.w.spawnPowerUp(c, kind)
	s.log.Debug("powerup dropped", zap.Stringer("kind", kind), zap.Int("row", c.Row), zap.Int("col", c.Col))
}

// applyLethalContact kills players and creeps standing in a flame, and
// players touching a creep. Sharing an edge is not contact.
func (s *ExplosionSystem) applyLethalContact() {
	var flames []Transform
	for _, e := range ecs.Query(s.w.Flames) {
		f, _ := s.w.Flames.Get(e)
		flames = append(flames, s.w.Map.CellRect(f.Cell))
	}

	for _, e := range ecs.Query(s.w.NPCs, s.w.Transforms) {
		t, _ := s.w.Transforms.Get(e)
		if touchesAny(*t, flames) {
			s.log.Info("creep destroyed", zap.Uint32("entity", uint32(e)))
			s.w.Registry.Destroy(e)
		}
	}

	var creeps []Transform
	for _, e := range ecs.Query(s.w.NPCs, s.w.Transforms) {
		t, _ := s.w.Transforms.Get(e)
		creeps = append(creeps, *t)
	}

	for _, e := range ecs.Query(s.w.Players, s.w.Transforms) {
		if s.w.Immortals.Has(e) {
			continue
		}
		t, _ := s.w.Transforms.Get(e)
		if touchesAny(*t, flames) || touchesAny(*t, creeps) {
			s.killPlayer(e)
		}
	}
}

// killPlayer costs the player a life. With lives left the player respawns at
// its start, stopped and immortal for a while; otherwise it is removed.
func (s *ExplosionSystem) killPlayer(e ecs.Entity) {
	p, _ := s.w.Players.Get(e)
	p.Lives--
	if p.Lives <= 0 {
		s.log.Info("player died", zap.Uint32("entity", uint32(e)))
		s.w.Registry.Destroy(e)
		return
	}

	t, _ := s.w.Transforms.Get(e)
	t.Position = p.Spawn
	s.w.setDirection(e, DirNone)
	s.w.Immortals.MustSet(e, Immortal{Remaining: s.cfg.ImmortalDuration})
	s.w.draw(e, resource.BombermanImmortal, LayerPlayer)
	s.log.Info("player respawned", zap.Uint32("entity", uint32(e)), zap.Int("lives", p.Lives))
}

func touchesAny(t Transform, rects []Transform) bool {
	for _, r := range rects {
		if intersects(t, r) {
			return true
		}
	}
	return false
}
