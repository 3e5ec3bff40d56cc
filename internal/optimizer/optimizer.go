// Package optimizer searches every build of an inventory for the highest special-attack damage.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/athena/internal/combat"
	"github.com/udisondev/athena/internal/model"
)

// ErrEmptySearchSpace is returned when a stamp slot, the cores or the weapon stamps have no candidates.
var ErrEmptySearchSpace = errors.New("empty search space")

// DefaultProgressEvery is how many evaluated builds separate two progress reports.
const DefaultProgressEvery = 100

// ctxCheckMask controls how often the scan loop polls the context.
const ctxCheckMask = 63

// ProgressFunc receives the number of evaluated builds and the size of the search space.
// Calls are serialized and done never decreases; the last call has done == total.
type ProgressFunc func(done, total int)

// Request describes one optimization run.
type Request struct {
	Candidates    Candidates
	CharBaseAtk   float64
	WeaponBaseAtk float64
	Team          model.TeamConfig
}

// Build is one equipment choice.
type Build struct {
	Stamps      [model.StampSlots]*model.Item
	Core        *model.Item
	WeaponStamp *model.Item
}

// Scenario pairs the build with the character and team of req.
func (b Build) Scenario(req Request) combat.Scenario {
	return combat.Scenario{
		CharBaseAtk:   req.CharBaseAtk,
		WeaponBaseAtk: req.WeaponBaseAtk,
		Stamps:        b.Stamps,
		Core:          b.Core,
		WeaponStamp:   b.WeaponStamp,
		Team:          req.Team,
	}
}

// StampNames returns stamp names in slot order.
func (b Build) StampNames() []string {
	names := make([]string, 0, len(b.Stamps))
	for _, s := range b.Stamps {
		if s != nil {
			names = append(names, s.Name())
		}
	}
	return names
}

// Best is the winning build of a search.
type Best struct {
	Build     Build
	Result    combat.Result
	Evaluated int
}

// Optimizer performs an exhaustive search. The zero value is usable:
// default evaluator, sequential scan, progress every DefaultProgressEvery builds.
type Optimizer struct {
	// Evaluator scores builds; nil means combat.Default().
	Evaluator *combat.Evaluator
	// Workers > 1 splits the search into that many contiguous chunks.
	// A negative value means runtime.NumCPU().
	Workers int
	// ProgressEvery <= 0 means DefaultProgressEvery.
	ProgressEvery int
	Progress      ProgressFunc
}

// candidate is a scored build with its enumeration index.
type candidate struct {
	index  int
	build  Build
	result combat.Result
}

// Optimize evaluates every build of req.Candidates and returns the one with the highest damage.
// When several builds tie, the one enumerated first wins.
func (o *Optimizer) Optimize(ctx context.Context, req Request) (*Best, error) {
	if err := req.Candidates.check(); err != nil {
		return nil, err
	}

	total := req.Candidates.Total()
	workers := o.workers(total)
	slog.Info("optimization started", "combinations", total, "workers", workers)
	start := time.Now()

	rep := o.newReporter(total)

	var (
		best *candidate
		err  error
	)
	if workers <= 1 {
		best, err = o.scan(ctx, req, 0, total, rep)
	} else {
		best, err = o.scanParallel(ctx, req, total, workers, rep)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("optimization finished",
		"combinations", total,
		"best_damage", best.result.Damage,
		"stamps", best.build.StampNames(),
		"core", best.build.Core.Name(),
		"weapon_stamp", best.build.WeaponStamp.Name(),
		"elapsed", time.Since(start))

	return &Best{Build: best.build, Result: best.result, Evaluated: total}, nil
}

func (o *Optimizer) evaluator() *combat.Evaluator {
	if o.Evaluator == nil {
		return combat.Default()
	}
	return o.Evaluator
}

func (o *Optimizer) workers(total int) int {
	w := o.Workers
	if w < 0 {
		w = runtime.NumCPU()
	}
	if w > total {
		w = total
	}
	return w
}

// scan evaluates indices [lo, hi) and keeps the first strictly best build.
func (o *Optimizer) scan(ctx context.Context, req Request, lo, hi int, rep *reporter) (*candidate, error) {
	eval := o.evaluator()
	var best *candidate
	for idx := lo; idx < hi; idx++ {
		if idx&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		build := req.Candidates.buildAt(idx)
		res, err := eval.Evaluate(build.Scenario(req))
		if err != nil {
			return nil, fmt.Errorf("evaluating build #%d: %w", idx, err)
		}
		if best == nil || res.Damage > best.result.Damage {
			best = &candidate{index: idx, build: build, result: res}
		}
		rep.tick()
	}
	return best, nil
}

// scanParallel splits [0, total) into contiguous chunks and folds chunk winners in chunk order.
func (o *Optimizer) scanParallel(ctx context.Context, req Request, total, workers int, rep *reporter) (*candidate, error) {
	size := (total + workers - 1) / workers
	chunks := (total + size - 1) / size
	winners := make([]*candidate, chunks)

	g, gctx := errgroup.WithContext(ctx)
	for i := range chunks {
		lo := i * size
		hi := min(lo+size, total)
		g.Go(func() error {
			slog.Debug("optimizer chunk started", "chunk", i, "from", lo, "to", hi)
			best, err := o.scan(gctx, req, lo, hi, rep)
			if err != nil {
				return err
			}
			winners[i] = best
			slog.Debug("optimizer chunk finished", "chunk", i, "best_damage", best.result.Damage)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	var best *candidate
	for _, w := range winners {
		if best == nil || w.result.Damage > best.result.Damage {
			best = w
		}
	}
	return best, nil
}

// reporter counts evaluated builds and forwards every n-th count to a ProgressFunc.
type reporter struct {
	fn    ProgressFunc
	every int64
	total int64
	done  atomic.Int64

	mu       sync.Mutex
	reported int64
}

func (o *Optimizer) newReporter(total int) *reporter {
	every := o.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}
	return &reporter{fn: o.Progress, every: int64(every), total: int64(total)}
}

func (r *reporter) tick() {
	n := r.done.Add(1)
	if r.fn == nil || (n%r.every != 0 && n != r.total) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= r.reported {
		return
	}
	r.reported = n
	r.fn(int(n), int(r.total))
}
