package db

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/athena/internal/model"
)

// ItemRow — представление предмета в таблице items.
// Stats и Effects хранятся как JSON (JSONB в PostgreSQL, TEXT в SQLite).
type ItemRow struct {
	Category string
	Name     string
	Slot     int
	SetName  string
	Stats    []byte
	Effects  []byte
}

// EncodeItemRow converts item to its row form.
func EncodeItemRow(item *model.Item) (ItemRow, error) {
	def := item.Def()
	stats := def.Stats
	if stats == nil {
		stats = map[string]float64{}
	}
	effects := def.Effects
	if effects == nil {
		effects = []model.EffectDef{}
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return ItemRow{}, fmt.Errorf("encoding stats of %s: %w", item, err)
	}
	effectsJSON, err := json.Marshal(effects)
	if err != nil {
		return ItemRow{}, fmt.Errorf("encoding effects of %s: %w", item, err)
	}
	return ItemRow{
		Category: def.Category,
		Name:     def.Name,
		Slot:     def.Slot,
		SetName:  def.SetName,
		Stats:    statsJSON,
		Effects:  effectsJSON,
	}, nil
}

// Item validates the row and builds the item.
func (r ItemRow) Item() (*model.Item, error) {
	def := model.ItemDef{
		Name:     r.Name,
		Category: r.Category,
		Slot:     r.Slot,
		SetName:  r.SetName,
	}
	if len(r.Stats) > 0 {
		if err := json.Unmarshal(r.Stats, &def.Stats); err != nil {
			return nil, fmt.Errorf("decoding stats of %s:%s: %w", r.Category, r.Name, err)
		}
	}
	if len(r.Effects) > 0 {
		if err := json.Unmarshal(r.Effects, &def.Effects); err != nil {
			return nil, fmt.Errorf("decoding effects of %s:%s: %w", r.Category, r.Name, err)
		}
	}
	return def.Item()
}
