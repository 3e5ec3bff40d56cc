package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/athena/internal/model"
)

// InventoryFile is the YAML layout of an inventory file.
type InventoryFile struct {
	Items []model.ItemDef `yaml:"items"`
}

// ReadInventoryFile reads item definitions from a YAML inventory file.
func ReadInventoryFile(path string) ([]model.ItemDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	var f InventoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}
	return f.Items, nil
}

// ReadItemFile reads a single item definition from a YAML file.
func ReadItemFile(path string) (model.ItemDef, error) {
	var def model.ItemDef
	raw, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("reading item %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return def, fmt.Errorf("parsing item %s: %w", path, err)
	}
	return def, nil
}

// WriteInventoryFile atomically replaces path with defs.
func WriteInventoryFile(path string, defs []model.ItemDef) error {
	raw, err := yaml.Marshal(InventoryFile{Items: defs})
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// FileStore keeps the inventory in a YAML file. Every write rewrites the whole file.
// A missing file reads as an empty inventory.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// LoadInventory reads and validates every item of the file.
func (s *FileStore) LoadInventory(ctx context.Context) (*model.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	inv, err := BuildInventory(defs)
	if err != nil {
		return nil, fmt.Errorf("loading inventory %s: %w", s.path, err)
	}
	slog.Debug("loaded inventory file", "path", s.path, "items", inv.Len())
	return inv, nil
}

// SaveItem adds item or replaces the item with the same category and name in place.
func (s *FileStore) SaveItem(ctx context.Context, item *model.Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", model.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, err := s.readLocked()
	if err != nil {
		return err
	}
	def := item.Def()
	if i := indexOf(defs, item.Category(), item.Name()); i >= 0 {
		defs[i] = def
	} else {
		defs = append(defs, def)
	}
	return WriteInventoryFile(s.path, defs)
}

// DeleteItem removes the item; model.ErrItemNotFound if absent.
func (s *FileStore) DeleteItem(ctx context.Context, category model.Category, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, err := s.readLocked()
	if err != nil {
		return err
	}
	i := indexOf(defs, category, name)
	if i < 0 {
		return fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name)
	}
	return WriteInventoryFile(s.path, slices.Delete(defs, i, i+1))
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readLocked() ([]model.ItemDef, error) {
	defs, err := ReadInventoryFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return defs, err
}

func indexOf(defs []model.ItemDef, category model.Category, name string) int {
	return slices.IndexFunc(defs, func(d model.ItemDef) bool {
		return d.Name == name && d.Category == category.String()
	})
}
