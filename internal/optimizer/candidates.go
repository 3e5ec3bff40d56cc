package optimizer

import (
	"fmt"
	"strings"

	"github.com/udisondev/athena/internal/model"
)

// Candidates is the search space: one list per stamp slot, cores and weapon stamps.
type Candidates struct {
	Slots        [model.StampSlots][]*model.Item
	Cores        []*model.Item
	WeaponStamps []*model.Item
}

// CandidatesFrom snapshots inv into a search space. Later changes to inv are not seen.
func CandidatesFrom(inv *model.Inventory) Candidates {
	var c Candidates
	for i := range c.Slots {
		c.Slots[i] = inv.StampsForSlot(i + 1)
	}
	c.Cores = inv.Cores()
	c.WeaponStamps = inv.WeaponStamps()
	return c
}

// Total returns the number of builds in the search space.
func (c Candidates) Total() int {
	n := len(c.Cores) * len(c.WeaponStamps)
	for _, s := range c.Slots {
		n *= len(s)
	}
	return n
}

// radices returns list sizes from the outermost (slot 1) to the innermost (weapon stamp) position.
func (c Candidates) radices() [model.StampSlots + 2]int {
	return [model.StampSlots + 2]int{
		len(c.Slots[0]), len(c.Slots[1]), len(c.Slots[2]),
		len(c.Cores), len(c.WeaponStamps),
	}
}

// check names every empty list.
func (c Candidates) check() error {
	var empty []string
	for i, s := range c.Slots {
		if len(s) == 0 {
			empty = append(empty, fmt.Sprintf("slot %d stamps", i+1))
		}
	}
	if len(c.Cores) == 0 {
		empty = append(empty, "cores")
	}
	if len(c.WeaponStamps) == 0 {
		empty = append(empty, "weapon stamps")
	}
	if len(empty) > 0 {
		return fmt.Errorf("%w: no %s", ErrEmptySearchSpace, strings.Join(empty, ", "))
	}
	return nil
}

// buildAt decodes an enumeration index into a build.
// Index 0 is the first item of every list; the weapon stamp varies fastest.
func (c Candidates) buildAt(idx int) Build {
	r := c.radices()
	var pos [model.StampSlots + 2]int
	for i := len(r) - 1; i >= 0; i-- {
		pos[i] = idx % r[i]
		idx /= r[i]
	}
	return Build{
		Stamps:      [model.StampSlots]*model.Item{c.Slots[0][pos[0]], c.Slots[1][pos[1]], c.Slots[2][pos[2]]},
		Core:        c.Cores[pos[3]],
		WeaponStamp: c.WeaponStamps[pos[4]],
	}
}
