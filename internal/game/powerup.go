package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// PowerUpSystem hands pickups to the players touching them. The pickup is
// destroyed on use, which is what keeps the effect from applying twice.
type PowerUpSystem struct {
	w   *World
	cfg Config
	log *zap.Logger
}

// NewPowerUpSystem creates the system.
func NewPowerUpSystem(w *World, log *zap.Logger) *PowerUpSystem {
	return &PowerUpSystem{w: w, cfg: w.cfg, log: log}
}

// Update applies and removes every pickup a player overlaps.
func (s *PowerUpSystem) Update(time.Duration) {
	for _, p := range ecs.Query(s.w.Players, s.w.Transforms) {
		pt, ok := s.w.Transforms.Get(p)
		if !ok {
			continue
		}
		for _, u := range ecs.Query(s.w.PowerUps, s.w.Transforms) {
			ut, ok := s.w.Transforms.Get(u)
			if !ok || !overlaps(*pt, *ut) {
				continue
			}
			pu, _ := s.w.PowerUps.Get(u)
			s.apply(p, pu.Kind)
			s.w.Registry.Destroy(u)
		}
	}
}

func (s *PowerUpSystem) apply(e ecs.Entity, kind PowerUpKind) {
	p, _ := s.w.Players.Get(e)
	switch kind {
	case PowerUpSpeed:
		if m, ok := s.w.Movables.Get(e); ok {
			m.Velocity.X = min(m.Velocity.X+s.cfg.SpeedBoost, s.cfg.MaxSpeed)
			m.Velocity.Y = min(m.Velocity.Y+s.cfg.SpeedBoost, s.cfg.MaxSpeed)
		}
	case PowerUpBomb:
		p.BombCapacity = min(p.BombCapacity+1, s.cfg.MaxBombs)
	case PowerUpRange:
		p.BlastRange = min(p.BlastRange+1, s.cfg.MaxBlastRange)
	}
	s.log.Debug("powerup applied", zap.Uint32("entity", uint32(e)), zap.Stringer("kind", kind))
}
