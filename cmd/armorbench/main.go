// armorbench filters an armor catalog, analyzes slot remaps and records
// the resulting change-sets.
//
// Usage:
//
//	go run ./cmd/armorbench -mod Skyrim.esm -slots BODY,Feet
//	go run ./cmd/armorbench -mod Capes.esp -remap FX01:remove -apply
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armorbench/internal/actor"
	"github.com/udisondev/armorbench/internal/config"
	"github.com/udisondev/armorbench/internal/data"
	"github.com/udisondev/armorbench/internal/db"
	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/session"
	"github.com/udisondev/armorbench/internal/tick"
)

const ConfigPath = "config/armorbench.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	cmd, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := run(ctx, cmd); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd command) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("ARMORBENCH_CONFIG"); p != "" {
		cfgPath = p
	}
	if cmd.configPath != "" {
		cfgPath = cmd.configPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("armorbench starting", "config", cfgPath, "log_level", cfg.LogLevel)

	handled, err := cfg.HandledMask()
	if err != nil {
		return fmt.Errorf("resolving slots: %w", err)
	}
	interacted, err := cfg.InteractedMask()
	if err != nil {
		return fmt.Errorf("resolving slots: %w", err)
	}

	catalog, err := data.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	led := ledger.New()
	deps := session.Deps{Catalog: catalog, Ledger: led}

	var ledgerRepo *db.LedgerRepository
	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		ledgerRepo = database.Ledger()
		if err := ledgerRepo.Restore(ctx, led); err != nil {
			return fmt.Errorf("restoring ledger: %w", err)
		}
		deps.RemapStore = database.Remap()
	}

	sessionID := uuid.Nil
	if cmd.sessionID != "" {
		sessionID, err = uuid.Parse(cmd.sessionID)
		if err != nil {
			return fmt.Errorf("parsing session id: %w", err)
		}
	}

	queue := tick.NewQueue()
	deps.Tasks = queue
	player := actor.NewPlayer("player")
	deps.Actor = player
	deps.Host = idleHost{}
	deps.Transformer = session.NewRecorder(led, catalog, cmd.reference, handled)

	sess, err := session.New(session.Options{
		ID:              sessionID,
		Handled:         handled,
		Interacted:      interacted,
		ResetSlotRemap:  cfg.ResetSlotRemap,
		ResetSliders:    cfg.ResetSliders,
		AutoDeleteGiven: cfg.AutoDeleteGiven,
		Highlights:      cfg.Highlights,
	}, deps)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := queue.Start(gctx, cfg.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer queue.Stop()

		b := &bench{
			sess:   sess,
			queue:  queue,
			player: player,
			ledger: ledgerRepo,
			out:    os.Stdout,
		}
		return b.execute(gctx, cmd)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("armorbench finished", "session", sess.ID())
	return nil
}

// idleHost is a host without menus: nothing blocks giving items, ticks always end.
type idleHost struct{}

func (idleHost) ItemMenuOpen() bool { return false }
func (idleHost) GamePaused() bool   { return false }

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
