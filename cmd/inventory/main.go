// Command inventory lists and edits the configured item store.
//
//	inventory [-config path] list
//	inventory [-config path] add -file item.yaml
//	inventory [-config path] remove -category core -name "Getsuga Tangle"
//	inventory [-config path] import -file inventory.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/athena/internal/config"
	"github.com/udisondev/athena/internal/data"
	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/report"
	"github.com/udisondev/athena/internal/store"
)

var errUsage = errors.New("usage: inventory [-config path] list | add -file item.yaml | remove -category c -name n | import -file inventory.yaml")

// errNotPersistent is returned for edits against the builtin inventory, which lives only in memory.
var errNotPersistent = errors.New("inventory.source builtin is not persistent; use file, sqlite or postgres")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (default $ATHENA_CONFIG or "+config.DefaultPath+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.LoadOptimizer(config.Path(*cfgPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetupLogging(os.Stderr, cfg.LogLevel)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
	case "add", "remove", "import":
		if cfg.Inventory.Source == config.SourceBuiltin {
			return fmt.Errorf("%s: %w", cmd, errNotPersistent)
		}
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}

	st, err := store.Open(ctx, cfg.Inventory, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	switch cmd {
	case "list":
		return list(ctx, st, out)
	case "add":
		return add(ctx, st, rest, out)
	case "remove":
		return remove(ctx, st, rest, out)
	case "import":
		return importFile(ctx, st, rest, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func list(ctx context.Context, st store.ItemStore, out io.Writer) error {
	inv, err := st.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	return report.Inventory(out, inv)
}

func add(ctx context.Context, st store.ItemStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	file := fs.String("file", "", "YAML file with one item")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("add: -file is required")
	}

	def, err := data.ReadItemFile(*file)
	if err != nil {
		return err
	}
	item, err := def.Item()
	if err != nil {
		return err
	}

	inv, err := st.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	if _, ok := inv.Get(item.Category(), item.Name()); ok {
		return fmt.Errorf("%w: %s", model.ErrDuplicateItem, item)
	}
	if err := st.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("saving %s: %w", item, err)
	}
	fmt.Fprintf(out, "%s added\n", item.Name())
	return nil
}

func remove(ctx context.Context, st store.ItemStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	categoryName := fs.String("category", "", "stamp, core or weapon_stamp")
	name := fs.String("name", "", "item name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	category, err := model.ParseCategory(*categoryName)
	if err != nil {
		return err
	}
	if err := st.DeleteItem(ctx, category, *name); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s removed\n", *name)
	return nil
}

// importFile upserts every item of an inventory file, validating all of them first.
func importFile(ctx context.Context, st store.ItemStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "YAML inventory file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("import: -file is required")
	}

	defs, err := data.ReadInventoryFile(*file)
	if err != nil {
		return err
	}
	inv, err := data.BuildInventory(defs)
	if err != nil {
		return fmt.Errorf("validating %s: %w", *file, err)
	}
	for _, item := range inv.Items() {
		if err := st.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("saving %s: %w", item, err)
		}
	}

	c := inv.Counts()
	slog.Info("inventory imported", "file", *file, "stamps", c.Stamps, "cores", c.Cores, "weapon_stamps", c.WeaponStamps)
	fmt.Fprintf(out, "%d items imported\n", inv.Len())
	return nil
}
