package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amalg/bomberman-ecs/internal/config"
	"github.com/amalg/bomberman-ecs/internal/game"
	"github.com/amalg/bomberman-ecs/internal/logging"
	"github.com/amalg/bomberman-ecs/internal/resource"
	"github.com/amalg/bomberman-ecs/internal/ui"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (default: built-in settings)")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	debug := flag.Bool("debug", false, "Log bomb and power-up events")
	seed := flag.Int64("seed", 0, "Map seed (0: random)")
	creeps := flag.Int("creeps", 0, "Number of creeps")
	tickRate := flag.Int("tick-rate", 0, "Simulation ticks per second")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags only override what was given on the command line
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "creeps":
			cfg.Creeps = *creeps
		case "tick-rate":
			cfg.TickRate = *tickRate
		}
	})

	// Logs never go to the terminal: any stderr output would corrupt
	// Bubbletea's rendering.
	log, err := logging.New(*logFile, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("game exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg game.Config, log *zap.Logger) error {
	engine, err := game.NewEngine(cfg, resource.Default(), log)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	snapshots := make(chan game.Snapshot, 1)
	engine.OnTick(ui.Feed(snapshots))
	snapshots <- engine.Snapshot()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(ui.NewModel(engine, snapshots), tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(ctx)
	})
	g.Go(func() error {
		// Leaving the TUI ends the session
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}
