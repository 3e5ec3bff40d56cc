package combat

import (
	"testing"

	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/testutil"
)

// emptyScenario returns a build of zero-stat, zero-effect filler items.
func emptyScenario(t testing.TB) Scenario {
	t.Helper()
	return Scenario{
		CharBaseAtk:   testutil.SampleCharBaseAtk,
		WeaponBaseAtk: testutil.SampleWeaponBaseAtk,
		Stamps: [model.StampSlots]*model.Item{
			testutil.Item(t, "empty-1", model.CategoryStamp, 1, "", model.Stats{}),
			testutil.Item(t, "empty-2", model.CategoryStamp, 2, "", model.Stats{}),
			testutil.Item(t, "empty-3", model.CategoryStamp, 3, "", model.Stats{}),
		},
		Core:        testutil.Item(t, "empty-core", model.CategoryCore, 0, "", model.Stats{}),
		WeaponStamp: testutil.Item(t, "empty-ws", model.CategoryWeaponStamp, 0, "", model.Stats{}),
	}
}

func sampleScenario(t testing.TB, inv *model.Inventory, stamps [3]string, core, ws string, team model.TeamConfig) Scenario {
	t.Helper()
	return Scenario{
		CharBaseAtk:   testutil.SampleCharBaseAtk,
		WeaponBaseAtk: testutil.SampleWeaponBaseAtk,
		Stamps: [model.StampSlots]*model.Item{
			testutil.MustGet(t, inv, model.CategoryStamp, stamps[0]),
			testutil.MustGet(t, inv, model.CategoryStamp, stamps[1]),
			testutil.MustGet(t, inv, model.CategoryStamp, stamps[2]),
		},
		Core:        testutil.MustGet(t, inv, model.CategoryCore, core),
		WeaponStamp: testutil.MustGet(t, inv, model.CategoryWeaponStamp, ws),
		Team:        team,
	}
}
