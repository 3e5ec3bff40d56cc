package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/athena/internal/model"
)

// ItemRepository управляет предметами инвентаря в PostgreSQL.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// LoadInventory загружает все предметы в порядке добавления.
func (r *ItemRepository) LoadInventory(ctx context.Context) (*model.Inventory, error) {
	query := `
		SELECT category, name, slot, set_name, stats, effects
		FROM items
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	inv := model.NewInventory()
	for rows.Next() {
		var (
			row  ItemRow
			slot int16
		)
		if err := rows.Scan(&row.Category, &row.Name, &slot, &row.SetName, &row.Stats, &row.Effects); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		row.Slot = int(slot)

		item, err := row.Item()
		if err != nil {
			return nil, fmt.Errorf("creating item model: %w", err)
		}
		if err := inv.Add(item); err != nil {
			return nil, fmt.Errorf("adding %s: %w", item, err)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	slog.Debug("loaded inventory from postgres", "items", inv.Len())
	return inv, nil
}

// SaveItem сохраняет предмет (upsert по category+name, позиция в порядке загрузки сохраняется).
func (r *ItemRepository) SaveItem(ctx context.Context, item *model.Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", model.ErrInvalidInput)
	}
	row, err := EncodeItemRow(item)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items (category, name, slot, set_name, stats, effects)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category, name) DO UPDATE SET
			slot = EXCLUDED.slot,
			set_name = EXCLUDED.set_name,
			stats = EXCLUDED.stats,
			effects = EXCLUDED.effects,
			updated_at = now()
	`

	_, err = r.db.Exec(ctx, query,
		row.Category, row.Name, int16(row.Slot), row.SetName, string(row.Stats), string(row.Effects),
	)
	if err != nil {
		return fmt.Errorf("saving item %s: %w", item, err)
	}
	return nil
}

// DeleteItem удаляет предмет. Возвращает model.ErrItemNotFound если его нет.
func (r *ItemRepository) DeleteItem(ctx context.Context, category model.Category, name string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM items WHERE category = $1 AND name = $2`,
		category.String(), name,
	)
	if err != nil {
		return fmt.Errorf("deleting item %s:%s: %w", category, name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name)
	}
	return nil
}

// ItemStore — ItemRepository, владеющий пулом соединений.
type ItemStore struct {
	*ItemRepository
	db *DB
}

// OpenItemStore применяет миграции, подключается к PostgreSQL и возвращает хранилище.
func OpenItemStore(ctx context.Context, dsn string) (*ItemStore, error) {
	if err := RunMigrations(ctx, dsn); err != nil {
		return nil, err
	}
	d, err := New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &ItemStore{ItemRepository: NewItemRepository(d.Pool()), db: d}, nil
}

// Close closes the connection pool.
func (s *ItemStore) Close() error {
	s.db.Close()
	return nil
}
