package game

import (
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

// Transform is an axis-aligned rectangle: Position is the top-left corner.
type Transform struct {
	Size     Vec2
	Position Vec2
}

// Center returns the rectangle's midpoint.
func (t Transform) Center() Vec2 {
	return t.Position.Add(t.Size.Scale(0.5))
}

// Collidable marks a collision participant.
//
// Spawner is a weak reference to the entity that created this one (a bomb's
// placer). While it is set, collisions between the two are ignored; it is
// cleared once they stop overlapping or the spawner is gone. Direction is the
// outcome of the last resolution pass.
type Collidable struct {
	Spawner   ecs.Entity
	Direction Direction
}

// Movable holds the per-axis speed and the current heading.
type Movable struct {
	Velocity  Vec2
	Direction Direction
}

// Tile classifies a grid cell entity.
type Tile struct {
	Type TileType
	Cell Cell
}

// Player tags the controllable entity and carries its bomb stats.
type Player struct {
	Lives        int
	BombCapacity int
	ActiveBombs  int
	BlastRange   int
	Spawn        Vec2
}

// NPC tags a creep. Target is the cell the creep is walking towards.
type NPC struct {
	Target Cell
}

// BombState is the bomb lifecycle.
type BombState int

const (
	BombArmed BombState = iota
	BombDetonating
	BombConsumed
)

// Bomb is a placed bomb counting down.
type Bomb struct {
	Owner ecs.Entity
	Cell  Cell
	Fuse  time.Duration
	Range int
	State BombState
}

// Flame is one blast tile, alive for Remaining.
type Flame struct {
	Cell      Cell
	Remaining time.Duration
}

// PowerUpKind selects a pickup effect.
type PowerUpKind int

const (
	PowerUpSpeed PowerUpKind = iota
	PowerUpBomb
	PowerUpRange
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeed:
		return "speed"
	case PowerUpBomb:
		return "bomb"
	case PowerUpRange:
		return "range"
	}
	return "unknown"
}

// PowerUp is a pickup lying on the map.
type PowerUp struct {
	Kind PowerUpKind
}

// Immortal suppresses lethal contact until Remaining runs out.
type Immortal struct {
	Remaining time.Duration
}

// Animated steps through Frames while the entity moves. Row follows the
// movement direction.
type Animated struct {
	Frames    int
	FrameTime time.Duration
	Elapsed   time.Duration
	Frame     int
	Row       Direction
}

// Draw layers, bottom to top.
const (
	LayerFloor = iota
	LayerBlock
	LayerPowerUp
	LayerBomb
	LayerFlame
	LayerCreep
	LayerPlayer
)

// Drawable references the sprite picked when the entity was created.
type Drawable struct {
	Sprite resource.Sprite
	Layer  int
}

// MoveChangeEvent reports that an entity changed its movement direction.
type MoveChangeEvent struct {
	Entity    ecs.Entity
	Direction Direction
}

// SpawnBombEvent asks for a bomb under the spawner.
type SpawnBombEvent struct {
	Spawner ecs.Entity
}
