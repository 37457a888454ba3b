package game

import (
	"sort"
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

// EntityView is the read-only part of a drawable entity handed to the
// presentation layer.
type EntityView struct {
	Entity    ecs.Entity
	Position  Vec2
	Size      Vec2
	Sprite    resource.Sprite
	Layer     int
	Direction Direction // Last collision result; None for non-collidables
	Frame     int
}

// Center returns the view's midpoint.
func (v EntityView) Center() Vec2 {
	return v.Position.Add(v.Size.Scale(0.5))
}

// PlayerView summarises the player for the HUD.
type PlayerView struct {
	Alive        bool
	Lives        int
	BombCapacity int
	ActiveBombs  int
	BlastRange   int
	Speed        float64
	Immortal     bool
	Heading      Direction
}

// Snapshot is a deep copy of the session state, safe to read from any
// goroutine.
type Snapshot struct {
	SessionID  string
	Tick       uint64
	Elapsed    time.Duration
	Status     Status
	Width      int
	Height     int
	TileSize   float64
	Tiles      [][]TileType
	Entities   []EntityView // Ordered by layer, then creation
	Player     PlayerView
	CreepsLeft int
}

// snapshotLocked copies the state. MUST be called while e.mu is held.
func (e *Engine) snapshotLocked() Snapshot {
	w := e.world
	snap := Snapshot{
		SessionID:  e.sessionID,
		Tick:       e.ticks,
		Elapsed:    e.elapsed,
		Status:     e.status,
		Width:      w.Map.Width,
		Height:     w.Map.Height,
		TileSize:   w.Map.TileSize,
		Tiles:      w.Map.Tiles(),
		CreepsLeft: w.NPCs.Len(),
	}

	ents := ecs.Query(w.Drawables, w.Transforms)
	snap.Entities = make([]EntityView, 0, len(ents))
	for _, id := range ents {
		d, _ := w.Drawables.Get(id)
		t, _ := w.Transforms.Get(id)
		v := EntityView{
			Entity:   id,
			Position: t.Position,
			Size:     t.Size,
			Sprite:   d.Sprite,
			Layer:    d.Layer,
		}
		if c, ok := w.Collidables.Get(id); ok {
			v.Direction = c.Direction
		}
		if a, ok := w.Animations.Get(id); ok {
			v.Frame = a.Frame
		}
		snap.Entities = append(snap.Entities, v)
	}
	sort.SliceStable(snap.Entities, func(i, j int) bool {
		return snap.Entities[i].Layer < snap.Entities[j].Layer
	})

	if p, ok := w.Players.Get(e.player); ok {
		snap.Player = PlayerView{
			Alive:        true,
			Lives:        p.Lives,
			BombCapacity: p.BombCapacity,
			ActiveBombs:  p.ActiveBombs,
			BlastRange:   p.BlastRange,
			Immortal:     w.Immortals.Has(e.player),
		}
		if m, ok := w.Movables.Get(e.player); ok {
			snap.Player.Speed = m.Velocity.X
			snap.Player.Heading = m.Direction
		}
	}
	return snap
}
