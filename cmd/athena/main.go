// Command athena finds the highest-damage build in an inventory and prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/athena/internal/config"
	"github.com/udisondev/athena/internal/optimizer"
	"github.com/udisondev/athena/internal/report"
	"github.com/udisondev/athena/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("athena", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (default $ATHENA_CONFIG or "+config.DefaultPath+")")
	invPath := fs.String("inventory", "", "YAML inventory file; overrides inventory.source")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOptimizer(config.Path(*cfgPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *invPath != "" {
		cfg.Inventory = config.InventoryConfig{Source: config.SourceFile, Path: *invPath}
	}

	config.SetupLogging(os.Stderr, cfg.LogLevel)

	st, err := store.Open(ctx, cfg.Inventory, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	inv, err := st.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	c := inv.Counts()
	slog.Info("inventory loaded", "stamps", c.Stamps, "cores", c.Cores, "weapon_stamps", c.WeaponStamps)

	opt := &optimizer.Optimizer{
		Workers:       cfg.Search.EffectiveWorkers(),
		ProgressEvery: cfg.Search.ProgressEvery,
		Progress:      logProgress(),
	}
	best, err := opt.Optimize(ctx, optimizer.Request{
		Candidates:    optimizer.CandidatesFrom(inv),
		CharBaseAtk:   cfg.Character.BaseAtk,
		WeaponBaseAtk: cfg.Character.WeaponBaseAtk,
		Team:          cfg.Team,
	})
	if err != nil {
		return fmt.Errorf("optimizing: %w", err)
	}

	return report.Best(out, best)
}

// logProgress logs every progress report at debug and each tenth of the search at info.
func logProgress() optimizer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		slog.Debug("optimizing", "done", done, "total", total)
		if decile := done * 10 / total; decile > lastDecile {
			lastDecile = decile
			slog.Info("optimizing", "progress", fmt.Sprintf("%d%%", decile*10), "done", done, "total", total)
		}
	}
}
