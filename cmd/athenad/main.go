// Command athenad serves the athena HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/athena/internal/api"
	"github.com/udisondev/athena/internal/config"
	"github.com/udisondev/athena/internal/store"
)

const shutdownTimeout = 10 * time.Second

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

	if err := run(ctx, os.Args[1:], nil); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. If ready is not nil it receives the listen address.
func run(ctx context.Context, args []string, ready chan<- string) error {
	fs := flag.NewFlagSet("athenad", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (default $ATHENA_CONFIG or "+config.DefaultPath+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOptimizer(config.Path(*cfgPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	config.SetupLogging(os.Stdout, cfg.LogLevel)
	slog.Info("athenad starting", "log_level", cfg.LogLevel, "inventory_source", cfg.Inventory.Source)

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

	srv := api.NewServer(inv, st, api.Defaults{
		CharBaseAtk:   cfg.Character.BaseAtk,
		WeaponBaseAtk: cfg.Character.WeaponBaseAtk,
		Team:          cfg.Team,
		Workers:       cfg.Search.EffectiveWorkers(),
		ProgressEvery: cfg.Search.ProgressEvery,
	})

	ln, err := net.Listen("tcp", cfg.HTTP.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.HTTP.Addr(), err)
	}

	httpSrv := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "addr", ln.Addr().String())
		if ready != nil {
			ready <- ln.Addr().String()
		}
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		slog.Info("http server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}
