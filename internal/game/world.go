package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/amalg/bomberman-ecs/internal/ecs"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

// SpriteSource resolves sprite ids. resource.Holder implements it.
type SpriteSource interface {
	Get(id resource.ID) (resource.Sprite, error)
}

// spriteSet is the resolved set of sprites a session needs. Resolving
// everything up front turns a missing resource into a startup error instead
// of a half-built entity.
type spriteSet map[resource.ID]resource.Sprite

var requiredSprites = []resource.ID{
	resource.BackgroundTile,
	resource.SolidBlock,
	resource.ExplodableBlock,
	resource.BombermanFront,
	resource.BombermanImmortal,
	resource.Creep,
	resource.Bomb,
	resource.Flame,
	resource.PowerUpSpeed,
	resource.PowerUpBomb,
	resource.PowerUpRange,
}

func loadSprites(src SpriteSource) (spriteSet, error) {
	set := make(spriteSet, len(requiredSprites))
	for _, id := range requiredSprites {
		s, err := src.Get(id)
		if err != nil {
			return nil, fmt.Errorf("load sprites: %w", err)
		}
		set[id] = s
	}
	return set, nil
}

// World is the entity store of one game session plus its event queues.
type World struct {
	Registry *ecs.Registry

	Transforms  *ecs.Store[Transform]
	Collidables *ecs.Store[Collidable]
	Movables    *ecs.Store[Movable]
	Tiles       *ecs.Store[Tile]
	Players     *ecs.Store[Player]
	NPCs        *ecs.Store[NPC]
	Bombs       *ecs.Store[Bomb]
	Flames      *ecs.Store[Flame]
	PowerUps    *ecs.Store[PowerUp]
	Immortals   *ecs.Store[Immortal]
	Animations  *ecs.Store[Animated]
	Drawables   *ecs.Store[Drawable]

	Map *Map

	MoveChanges ecs.Queue[MoveChangeEvent]
	BombSpawns  ecs.Queue[SpawnBombEvent]

	cfg     Config
	sprites spriteSet
}

// NewWorld creates an empty world with an all-None map.
func NewWorld(cfg Config, sprites spriteSet) *World {
	r := ecs.NewRegistry()
	transforms := ecs.Register[Transform](r).Check(func(t *Transform) error {
		if t.Size.X <= 0 || t.Size.Y <= 0 {
			return errors.New("size must be strictly positive")
		}
		return nil
	})

	return &World{
		Registry:    r,
		Transforms:  transforms,
		Collidables: ecs.Register[Collidable](r).Requires(transforms),
		Movables:    ecs.Register[Movable](r),
		Tiles:       ecs.Register[Tile](r),
		Players:     ecs.Register[Player](r),
		NPCs:        ecs.Register[NPC](r),
		Bombs:       ecs.Register[Bomb](r),
		Flames:      ecs.Register[Flame](r),
		PowerUps:    ecs.Register[PowerUp](r),
		Immortals:   ecs.Register[Immortal](r),
		Animations:  ecs.Register[Animated](r),
		Drawables:   ecs.Register[Drawable](r),
		Map:         NewMap(cfg.WidthTiles, cfg.HeightTiles, cfg.TileSize),
		cfg:         cfg,
		sprites:     sprites,
	}
}

func (w *World) draw(e ecs.Entity, id resource.ID, layer int) {
	w.Drawables.MustSet(e, Drawable{Sprite: w.sprites[id], Layer: layer})
}

func (w *World) spawnFloor(c Cell) ecs.Entity {
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.CellRect(c))
	w.Tiles.MustSet(e, Tile{Type: TileNone, Cell: c})
	w.draw(e, resource.BackgroundTile, LayerFloor)
	return e
}

func (w *World) spawnBlock(c Cell, t TileType) ecs.Entity {
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.CellRect(c))
	w.Collidables.MustSet(e, Collidable{})
	w.Tiles.MustSet(e, Tile{Type: t, Cell: c})
	if t == SolidBlock {
		w.draw(e, resource.SolidBlock, LayerBlock)
	} else {
		w.draw(e, resource.ExplodableBlock, LayerBlock)
	}
	w.Map.set(c, t, e)
	return e
}

// destroyBlock turns an explodable cell into None. The grid and the block
// entity are updated together so they cannot diverge.
func (w *World) destroyBlock(c Cell) bool {
	if w.Map.At(c) != ExplodableBlock {
		return false
	}
	w.Registry.Destroy(w.Map.Block(c))
	w.Map.set(c, TileNone, ecs.Nil)
	return true
}

func (w *World) spawnPlayer() ecs.Entity {
	cfg := w.cfg
	e := w.Registry.Create()
	w.Transforms.MustSet(e, Transform{
		Size:     Vec2{X: cfg.PlayerSize, Y: cfg.PlayerSize},
		Position: cfg.PlayerStart,
	})
	w.Movables.MustSet(e, Movable{
		Velocity:  Vec2{X: cfg.PlayerSpeed, Y: cfg.PlayerSpeed},
		Direction: DirNone,
	})
	w.Animations.MustSet(e, Animated{Frames: 8, FrameTime: cfg.AnimFrameTime})
	w.Collidables.MustSet(e, Collidable{})
	w.Players.MustSet(e, Player{
		Lives:        cfg.PlayerLives,
		BombCapacity: cfg.BombCapacity,
		BlastRange:   cfg.BlastRange,
		Spawn:        cfg.PlayerStart,
	})
	w.draw(e, resource.BombermanFront, LayerPlayer)
	w.MoveChanges.Push(MoveChangeEvent{Entity: e, Direction: DirNone})
	return e
}

func (w *World) spawnCreep(c Cell) ecs.Entity {
	cfg := w.cfg
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.Centered(c, cfg.CreepSize))
	w.Movables.MustSet(e, Movable{
		Velocity:  Vec2{X: cfg.CreepSpeed, Y: cfg.CreepSpeed},
		Direction: DirNone,
	})
	w.Animations.MustSet(e, Animated{Frames: 4, FrameTime: cfg.AnimFrameTime})
	w.NPCs.MustSet(e, NPC{Target: c})
	w.draw(e, resource.Creep, LayerCreep)
	return e
}

func (w *World) spawnBomb(owner ecs.Entity, c Cell, blastRange int) ecs.Entity {
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.Centered(c, w.cfg.BombSize))
	w.Collidables.MustSet(e, Collidable{Spawner: owner})
	w.Bombs.MustSet(e, Bomb{
		Owner: owner,
		Cell:  c,
		Fuse:  w.cfg.BombFuse,
		Range: blastRange,
		State: BombArmed,
	})
	w.draw(e, resource.Bomb, LayerBomb)
	return e
}

func (w *World) spawnFlame(c Cell, d time.Duration) ecs.Entity {
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.Centered(c, w.cfg.FlameSize))
	w.Flames.MustSet(e, Flame{Cell: c, Remaining: d})
	w.draw(e, resource.Flame, LayerFlame)
	return e
}

var powerUpSprites = map[PowerUpKind]resource.ID{
	PowerUpSpeed: resource.PowerUpSpeed,
	PowerUpBomb:  resource.PowerUpBomb,
	PowerUpRange: resource.PowerUpRange,
}

func (w *World) spawnPowerUp(c Cell, kind PowerUpKind) ecs.Entity {
	e := w.Registry.Create()
	w.Transforms.MustSet(e, w.Map.Centered(c, w.cfg.PowerUpSize))
	w.PowerUps.MustSet(e, PowerUp{Kind: kind})
	w.draw(e, powerUpSprites[kind], LayerPowerUp)
	return e
}

// bombAt returns the live bomb on c, or ecs.Nil.
func (w *World) bombAt(c Cell) ecs.Entity {
	for _, e := range ecs.Query(w.Bombs) {
		if b, ok := w.Bombs.Get(e); ok && b.Cell == c && b.State != BombConsumed {
			return e
		}
	}
	return ecs.Nil
}

// flameAt returns the live flame on c, or ecs.Nil.
func (w *World) flameAt(c Cell) ecs.Entity {
	for _, e := range ecs.Query(w.Flames) {
		if f, ok := w.Flames.Get(e); ok && f.Cell == c {
			return e
		}
	}
	return ecs.Nil
}

// setDirection changes an entity's heading and reports the change to the
// move-change queue. Same-direction requests are ignored.
func (w *World) setDirection(e ecs.Entity, d Direction) {
	m, ok := w.Movables.Get(e)
	if !ok || m.Direction == d {
		return
	}
	m.Direction = d
	w.MoveChanges.Push(MoveChangeEvent{Entity: e, Direction: d})
}
