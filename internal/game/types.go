package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Vec2 is a point or extent in pixels.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// Direction is a cardinal movement or collision direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Cardinals lists the four ray directions in blast order.
var Cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Unit returns the screen-space unit vector (y grows downwards).
func (d Direction) Unit() Vec2 {
	switch d {
	case DirUp:
		return Vec2{X: 0, Y: -1}
	case DirDown:
		return Vec2{X: 0, Y: 1}
	case DirLeft:
		return Vec2{X: -1, Y: 0}
	case DirRight:
		return Vec2{X: 1, Y: 0}
	}
	return Vec2{}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// TileType classifies a map cell.
type TileType int

const (
	TileNone        TileType = iota
	SolidBlock               // Indestructible
	ExplodableBlock          // Destroyed by blasts
)

func (t TileType) String() string {
	switch t {
	case SolidBlock:
		return "solid"
	case ExplodableBlock:
		return "explodable"
	}
	return "none"
}

// Cell is a grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	switch d {
	case DirUp:
		c.Row--
	case DirDown:
		c.Row++
	case DirLeft:
		c.Col--
	case DirRight:
		c.Col++
	}
	return c
}

// ActionType is the kind of input forwarded by the presentation layer.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionStop
	ActionPlaceBomb
)

// Action is a player input applied at the start of the next tick.
type Action struct {
	Type ActionType
	Dir  Direction // Only relevant for ActionMove
}

// Status is the outcome of the current session.
type Status int

const (
	StatusRunning Status = iota
	StatusWon            // Every creep destroyed
	StatusLost           // Player out of lives
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "running"
}

// Config holds the tunables of a game session.
type Config struct {
	WidthTiles     int     `yaml:"width_tiles"`
	HeightTiles    int     `yaml:"height_tiles"`
	TileSize       float64 `yaml:"tile_size"`
	TickRate       int     `yaml:"tick_rate"` // Ticks per second
	Seed           int64   `yaml:"seed"`      // 0 picks a time-based seed
	ExplodableFill float64 `yaml:"explodable_fill"`
	KeepClearTiles int     `yaml:"keep_clear_tiles"` // Around the player's start

	PlayerSize   float64 `yaml:"player_size"`
	PlayerStart  Vec2    `yaml:"player_start"`
	PlayerSpeed  float64 `yaml:"player_speed"` // Pixels per second per axis
	PlayerLives  int     `yaml:"player_lives"`
	BombCapacity int     `yaml:"bomb_capacity"`
	BlastRange   int     `yaml:"blast_range"`

	BombFuse         time.Duration `yaml:"bomb_fuse"`
	FlameDuration    time.Duration `yaml:"flame_duration"`
	ImmortalDuration time.Duration `yaml:"immortal_duration"`
	AnimFrameTime    time.Duration `yaml:"anim_frame_time"`

	BombSize    float64 `yaml:"bomb_size"`
	FlameSize   float64 `yaml:"flame_size"`
	PowerUpSize float64 `yaml:"powerup_size"`

	Creeps          int     `yaml:"creeps"`
	CreepSize       float64 `yaml:"creep_size"`
	CreepSpeed      float64 `yaml:"creep_speed"`
	CreepMinTiles   int     `yaml:"creep_min_tiles"` // Minimum manhattan distance from the player
	CreepTurnChance float64 `yaml:"creep_turn_chance"`

	PowerUpChance float64 `yaml:"powerup_chance"`
	SpeedBoost    float64 `yaml:"speed_boost"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MaxBombs      int     `yaml:"max_bombs"`
	MaxBlastRange int     `yaml:"max_blast_range"`
}

// DefaultConfig returns the classic 21x21 board setup.
func DefaultConfig() Config {
	return Config{
		WidthTiles:     21,
		HeightTiles:    21,
		TileSize:       64,
		TickRate:       60,
		ExplodableFill: 0.7,
		KeepClearTiles: 3,

		PlayerSize:   30,
		PlayerStart:  Vec2{X: 81, Y: 81},
		PlayerSpeed:  192,
		PlayerLives:  3,
		BombCapacity: 1,
		BlastRange:   2,

		BombFuse:         3 * time.Second,
		FlameDuration:    500 * time.Millisecond,
		ImmortalDuration: 3 * time.Second,
		AnimFrameTime:    125 * time.Millisecond,

		BombSize:    48,
		FlameSize:   48,
		PowerUpSize: 32,

		Creeps:          4,
		CreepSize:       30,
		CreepSpeed:      96,
		CreepMinTiles:   8,
		CreepTurnChance: 0.25,

		PowerUpChance: 0.3,
		SpeedBoost:    32,
		MaxSpeed:      320,
		MaxBombs:      8,
		MaxBlastRange: 8,
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.WidthTiles < 3 || c.HeightTiles < 3 {
		errs = append(errs, fmt.Errorf("board must be at least 3x3 tiles, got %dx%d", c.WidthTiles, c.HeightTiles))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tile_size", c.TileSize},
		{"player_size", c.PlayerSize},
		{"player_speed", c.PlayerSpeed},
		{"bomb_size", c.BombSize},
		{"flame_size", c.FlameSize},
		{"powerup_size", c.PowerUpSize},
		{"creep_size", c.CreepSize},
		{"creep_speed", c.CreepSpeed},
	} {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", f.name, f.v))
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"explodable_fill", c.ExplodableFill},
		{"powerup_chance", c.PowerUpChance},
		{"creep_turn_chance", c.CreepTurnChance},
	} {
		if f.v < 0 || f.v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %g", f.name, f.v))
		}
	}
	if c.KeepClearTiles <= 0 {
		errs = append(errs, fmt.Errorf("keep_clear_tiles must be positive, got %d", c.KeepClearTiles))
	}
	if c.PlayerLives <= 0 || c.BombCapacity <= 0 || c.BlastRange <= 0 {
		errs = append(errs, errors.New("player_lives, bomb_capacity and blast_range must be positive"))
	}
	if c.BombFuse <= 0 || c.FlameDuration <= 0 || c.AnimFrameTime <= 0 {
		errs = append(errs, errors.New("bomb_fuse, flame_duration and anim_frame_time must be positive"))
	}
	if c.Creeps < 0 {
		errs = append(errs, fmt.Errorf("creeps must not be negative, got %d", c.Creeps))
	}
	if c.MaxSpeed < c.PlayerSpeed || c.MaxBombs < c.BombCapacity || c.MaxBlastRange < c.BlastRange {
		errs = append(errs, errors.New("power-up caps must not be below the starting values"))
	}
	if c.PlayerSize >= c.TileSize || c.CreepSize >= c.TileSize {
		errs = append(errs, errors.New("player_size and creep_size must be smaller than tile_size"))
	} else if err := c.validateStart(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateStart checks that the player's starting rectangle fits inside one
// walkable cell: not on the border and not on a pillar.
func (c Config) validateStart() error {
	if c.TileSize <= 0 || c.PlayerSize <= 0 {
		return nil
	}
	row := int(math.Floor(c.PlayerStart.Y / c.TileSize))
	col := int(math.Floor(c.PlayerStart.X / c.TileSize))
	endRow := int(math.Floor((c.PlayerStart.Y + c.PlayerSize) / c.TileSize))
	endCol := int(math.Floor((c.PlayerStart.X + c.PlayerSize) / c.TileSize))
	switch {
	case row != endRow || col != endCol:
		return fmt.Errorf("player_start %v straddles a tile edge", c.PlayerStart)
	case row < 1 || col < 1 || row > c.HeightTiles-2 || col > c.WidthTiles-2:
		return fmt.Errorf("player_start %v is outside the walkable area", c.PlayerStart)
	case row%2 == 0 && col%2 == 0:
		return fmt.Errorf("player_start %v is inside a pillar", c.PlayerStart)
	}
	return nil
}
