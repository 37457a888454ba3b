// Command simulate plays a session without a terminal UI. A scripted bomber
// wanders the board dropping bombs, and a summary is printed at the end.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/amalg/bomberman-ecs/internal/config"
	"github.com/amalg/bomberman-ecs/internal/game"
	"github.com/amalg/bomberman-ecs/internal/logging"
	"github.com/amalg/bomberman-ecs/internal/resource"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (default: built-in settings)")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	debug := flag.Bool("debug", false, "Log bomb and power-up events")
	seed := flag.Int64("seed", 1, "Map and bot seed")
	ticks := flag.Int("ticks", 3600, "Maximum number of ticks to simulate")
	bombEvery := flag.Int("bomb-every", 90, "Ticks between bombs")
	turnEvery := flag.Int("turn-every", 20, "Ticks between heading changes")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = *seed

	log, err := logging.New(*logFile, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	engine, err := game.NewEngine(cfg, resource.Default(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create engine: %v\n", err)
		os.Exit(1)
	}

	b := &bot{
		rng:       rand.New(rand.NewSource(*seed)),
		bombEvery: *bombEvery,
		turnEvery: *turnEvery,
	}
	first := engine.Snapshot()
	last := simulate(engine, b, *ticks)

	log.Info("simulation finished",
		zap.String("session", last.SessionID),
		zap.Stringer("status", last.Status),
		zap.Uint64("ticks", last.Tick),
	)
	printSummary(first, last, b)
}

// simulate steps engine at the configured tick rate until the game ends or
// maxTicks is reached.
func simulate(engine *game.Engine, b *bot, maxTicks int) game.Snapshot {
	dt := time.Second / time.Duration(engine.Config.TickRate)
	snap := engine.Snapshot()
	for i := 0; i < maxTicks && snap.Status == game.StatusRunning; i++ {
		for _, a := range b.act(i, snap) {
			engine.EnqueueAction(a)
		}
		snap = engine.Step(dt)
	}
	return snap
}

// bot drops a bomb every bombEvery ticks and picks a random open heading
// every turnEvery ticks.
type bot struct {
	rng       *rand.Rand
	bombEvery int
	turnEvery int
	bombs     int
}

func (b *bot) act(tick int, snap game.Snapshot) []game.Action {
	if !snap.Player.Alive {
		return nil
	}
	var actions []game.Action
	if b.bombEvery > 0 && tick%b.bombEvery == 0 && snap.Player.ActiveBombs < snap.Player.BombCapacity {
		actions = append(actions, game.Action{Type: game.ActionPlaceBomb})
		b.bombs++
	}
	if b.turnEvery > 0 && tick%b.turnEvery == 0 {
		if d := b.heading(snap); d == game.DirNone {
			actions = append(actions, game.Action{Type: game.ActionStop})
		} else {
			actions = append(actions, game.Action{Type: game.ActionMove, Dir: d})
		}
	}
	return actions
}

// heading picks a random direction whose neighbouring tile is free.
func (b *bot) heading(snap game.Snapshot) game.Direction {
	cell, ok := playerCell(snap)
	if !ok {
		return game.DirNone
	}
	var open []game.Direction
	for _, d := range game.Cardinals {
		n := cell.Step(d)
		if n.Row < 0 || n.Row >= snap.Height || n.Col < 0 || n.Col >= snap.Width {
			continue
		}
		if snap.Tiles[n.Row][n.Col] == game.TileNone {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return game.DirNone
	}
	return open[b.rng.Intn(len(open))]
}

func playerCell(snap game.Snapshot) (game.Cell, bool) {
	for _, v := range snap.Entities {
		if v.Layer != game.LayerPlayer {
			continue
		}
		c := v.Center()
		return game.Cell{Row: int(c.Y / snap.TileSize), Col: int(c.X / snap.TileSize)}, true
	}
	return game.Cell{}, false
}

func countTiles(snap game.Snapshot, t game.TileType) int {
	n := 0
	for _, row := range snap.Tiles {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}

func printSummary(first, last game.Snapshot, b *bot) {
	fmt.Printf("💣 Bomberman simulation %s\n", last.SessionID)
	fmt.Printf("  status:           %s\n", last.Status)
	fmt.Printf("  ticks:            %d (%s)\n", last.Tick, last.Elapsed.Round(time.Millisecond))
	fmt.Printf("  bombs requested:  %d\n", b.bombs)
	fmt.Printf("  blocks destroyed: %d of %d\n",
		countTiles(first, game.ExplodableBlock)-countTiles(last, game.ExplodableBlock),
		countTiles(first, game.ExplodableBlock))
	fmt.Printf("  creeps left:      %d of %d\n", last.CreepsLeft, first.CreepsLeft)
	if p := last.Player; p.Alive {
		fmt.Printf("  lives:            %d\n", p.Lives)
		fmt.Printf("  bombs/range/speed: %d/%d/%.0f\n", p.BombCapacity, p.BlastRange, p.Speed)
	} else {
		fmt.Println("  player:           dead")
	}
}
