package combat

import (
	"testing"

	"github.com/udisondev/athena/internal/testutil"
)

func BenchmarkEvaluate(b *testing.B) {
	inv := testutil.SampleInventory(b)
	s := sampleScenario(b, inv, [3]string{"BT_1 (Lv25)", "BT_2 (Lv25)", "BT_3 (Lv25)"}, "Gather Up! 13", "Power of Hollowfication", testutil.SampleTeam)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Evaluate(s); err != nil {
			b.Fatal(err)
		}
	}
}
