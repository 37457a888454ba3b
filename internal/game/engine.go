package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amalg/bomberman-ecs/internal/ecs"
)

// Engine runs the simulation of one game session at a time.
//
// The simulation itself is single-threaded: every system runs inside tick,
// under mu, in a fixed order. Input from other goroutines goes through the
// action channel and is applied at the start of the next tick.
type Engine struct {
	Config Config

	sessionID string
	world     *World
	systems   []System
	player    ecs.Entity
	creeps    int
	status    Status
	ticks     uint64
	elapsed   time.Duration

	sprites spriteSet
	seed    int64
	log     *zap.Logger
	actions chan Action
	mu      sync.Mutex
	onTick  func(Snapshot) // Callback after each tick with a copy of the state
}

// NewEngine validates the config, resolves every sprite and builds the first
// session. A missing sprite is reported here, before anything is created.
func NewEngine(cfg Config, sprites SpriteSource, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	set, err := loadSprites(sprites)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		Config:  cfg,
		sprites: set,
		seed:    seed,
		log:     log,
		actions: make(chan Action, 256),
	}
	e.newGame()
	return e, nil
}

// newGame rebuilds the map and every entity. The caller must hold mu or own
// the engine exclusively.
func (e *Engine) newGame() {
	e.discardActions()
	rng := rand.New(rand.NewSource(e.seed))
	w := NewWorld(e.Config, e.sprites)

	e.player = w.spawnPlayer()
	start := w.Map.CellOf(e.Config.PlayerStart)
	free := w.buildMap(rng, start)
	e.creeps = len(w.spawnCreeps(rng, free, start, e.Config.Creeps, e.Config.CreepMinTiles))

	e.world = w
	e.systems = []System{
		NewNPCSystem(w, rng),
		NewMoveSystem(w),
		NewExplosionSystem(w, &w.BombSpawns, rng, e.log),
		NewAnimateSystem(w),
		NewCollisionSystem(w, &w.MoveChanges),
		NewPowerUpSystem(w, e.log),
	}
	e.status = StatusRunning
	e.ticks = 0
	e.elapsed = 0
	e.sessionID = uuid.NewString()

	e.log.Info("game started",
		zap.String("session", e.sessionID),
		zap.Int64("seed", e.seed),
		zap.Uint64("map", w.Map.Fingerprint()),
		zap.Int("creeps", e.creeps),
	)
}

// Restart starts a new session on a fresh map. Each restart draws a new seed
// from the previous one so consecutive maps differ but stay reproducible.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seed = rand.New(rand.NewSource(e.seed)).Int63()
	e.newGame()
}

// OnTick sets a callback that is invoked after every tick with a copy of the
// state. It runs without the engine lock held.
func (e *Engine) OnTick(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Run ticks the engine at the configured rate until ctx is done. Each tick
// advances the simulation by the real time elapsed since the previous one.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.Config.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			e.Step(now.Sub(last))
			last = now
		}
	}
}

// EnqueueAction queues an input for the next tick.
func (e *Engine) EnqueueAction(a Action) {
	select {
	case e.actions <- a:
	default:
		// Drop action if buffer is full (prevents blocking)
	}
}

// Step advances the simulation by dt and returns the resulting state.
// The snapshot is copied under the lock; the callback runs after the lock is
// released so it may call back into the engine.
func (e *Engine) Step(dt time.Duration) Snapshot {
	e.mu.Lock()
	if e.status == StatusRunning {
		e.tick(dt)
	}
	snap := e.snapshotLocked()
	fn := e.onTick
	e.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}

// tick runs one simulation step: input, then the systems in pipeline order,
// then the win/lose check.
func (e *Engine) tick(dt time.Duration) {
	e.drainActions()
	for _, s := range e.systems {
		s.Update(dt)
	}
	e.ticks++
	e.elapsed += dt
	e.checkWinCondition()
}

// drainActions applies all queued player actions.
func (e *Engine) drainActions() {
	for {
		select {
		case a := <-e.actions:
			if !e.world.Registry.Alive(e.player) {
				continue
			}
			switch a.Type {
			case ActionMove:
				e.world.setDirection(e.player, a.Dir)
			case ActionStop:
				e.world.setDirection(e.player, DirNone)
			case ActionPlaceBomb:
				e.world.BombSpawns.Push(SpawnBombEvent{Spawner: e.player})
			}
		default:
			return
		}
	}
}

// discardActions drops input queued for a previous session.
func (e *Engine) discardActions() {
	for {
		select {
		case <-e.actions:
		default:
			return
		}
	}
}

func (e *Engine) checkWinCondition() {
	switch {
	case !e.world.Registry.Alive(e.player):
		e.status = StatusLost
	case e.creeps > 0 && e.world.NPCs.Len() == 0:
		e.status = StatusWon
	default:
		return
	}
	e.log.Info("game over",
		zap.String("session", e.sessionID),
		zap.Stringer("status", e.status),
		zap.Uint64("ticks", e.ticks),
		zap.Duration("elapsed", e.elapsed),
	)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}
