// Package report renders optimization results and inventory summaries for terminals.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/optimizer"
)

// Damage formats damage rounded to a whole number with thousands separators.
func Damage(v float64) string {
	return humanize.Comma(int64(math.RoundToEven(v)))
}

// Attack formats final attack without decimals.
func Attack(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// CritRate formats a crit rate ratio as a percentage with one decimal.
func CritRate(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// CritDamage formats a crit damage ratio as a whole percentage.
func CritDamage(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// Best writes the winning build panel.
func Best(w io.Writer, best *optimizer.Best) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Best build: %s damage (%s combinations)\n", Damage(best.Result.Damage), humanize.Comma(int64(best.Evaluated)))
	fmt.Fprintf(&b, "  Weapon stamp: %s\n", best.Build.WeaponStamp.Name())
	fmt.Fprintf(&b, "  Core:         %s\n", best.Build.Core.Name())
	b.WriteString("  Stamps:\n")
	for _, s := range best.Build.Stamps {
		fmt.Fprintf(&b, "    - %s\n", s.Name())
	}
	fmt.Fprintf(&b, "  Final ATK:    %s\n", Attack(best.Result.FinalAttack))
	fmt.Fprintf(&b, "  Crit Rate:    %s\n", CritRate(best.Result.FinalCritRate))
	fmt.Fprintf(&b, "  Crit DMG:     %s\n", CritDamage(best.Result.FinalCritDamage))
	if sets := best.Result.Breakdown.ActiveSets; len(sets) > 0 {
		fmt.Fprintf(&b, "  Active sets:  %s\n", strings.Join(sets, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Inventory writes the item list grouped by category, followed by the counts.
func Inventory(w io.Writer, inv *model.Inventory) error {
	var b strings.Builder
	for slot := 1; slot <= model.StampSlots; slot++ {
		fmt.Fprintf(&b, "Stamps, slot %d:\n", slot)
		writeItems(&b, inv.StampsForSlot(slot))
	}
	b.WriteString("Cores:\n")
	writeItems(&b, inv.Cores())
	b.WriteString("Weapon stamps:\n")
	writeItems(&b, inv.WeaponStamps())

	c := inv.Counts()
	fmt.Fprintf(&b, "Stamps: %d\nCores: %d\nWeapon Stamps: %d\n", c.Stamps, c.Cores, c.WeaponStamps)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeItems(b *strings.Builder, items []*model.Item) {
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "  - %s", it.Name())
		if it.SetName() != "" {
			fmt.Fprintf(b, " [%s]", it.SetName())
		}
		b.WriteString("\n")
	}
}
