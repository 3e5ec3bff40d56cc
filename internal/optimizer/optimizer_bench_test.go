package optimizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/udisondev/athena/internal/model"
)

func BenchmarkOptimize(b *testing.B) {
	c := flatCandidates(b, 6, func(k int) float64 { return float64(k * 10) })
	req := Request{Candidates: c, CharBaseAtk: 605, WeaponBaseAtk: 908, Team: model.TeamConfig{BuffAtkFlat: 540}}

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			opt := &Optimizer{Workers: workers}
			for b.Loop() {
				if _, err := opt.Optimize(context.Background(), req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
