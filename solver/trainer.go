package solver

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hunlsolver/abstraction"
	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/game"
	"github.com/lox/hunlsolver/poker"
)

// Progress is emitted periodically during training.
type Progress struct {
	Iteration    int64
	RegretSize   int
	StrategySize int
	Elapsed      time.Duration
}

// Trainer orchestrates MCCFR training: alternating-traverser iterations over
// independent parallel game trees, periodic atomic checkpointing, and a
// wall-clock training budget (spec §4.8, §4.10, §5).
type Trainer struct {
	Config     TrainingConfig
	Regrets    *Table
	Strategies *Table
	Keys       *KeyEncoder
	Eval       equity.Evaluator
	Clock      quartz.Clock

	iteration int64
	rng       *rand.Rand
}

// NewTrainer wires a trainer from its config, a postflop bucketer (itself
// backed by a trained centroid table and an equity oracle), and a showdown
// evaluator.
func NewTrainer(cfg TrainingConfig, bucketer abstraction.Bucketer, eval equity.Evaluator) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{
		Config:     cfg,
		Regrets:    NewTable(),
		Strategies: NewTable(),
		Keys:       NewKeyEncoder(bucketer),
		Eval:       eval,
		Clock:      quartz.NewReal(),
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Iteration returns the number of completed training iterations.
func (t *Trainer) Iteration() int64 { return t.iteration }

// Resume loads a prior checkpoint's tables in place, picking up the
// iteration counter where it left off (spec §4.10: "Resume reloads both
// files if present").
func (t *Trainer) Resume(basePath string) error {
	iter, regrets, strategies, err := LoadCheckpoint(basePath)
	if err != nil {
		return err
	}
	t.iteration = iter
	t.Regrets = regrets
	t.Strategies = strategies
	return nil
}

// Run alternates the traverser and button between iterations (spec §4.8:
// "alternate the traverser i ∈ {0,1} per iteration (and alternate button
// between iterations)"), checkpointing every CheckpointEvery iterations and
// stopping once ctx is cancelled, the runtime budget elapses, or
// maxIterations is reached (0 means unbounded). Graceful shutdown finishes
// the in-flight iteration, then checkpoints, before returning (spec §5:
// "No cancellation of a mid-flight traversal is required ... finish the
// current traversal, then checkpoint").
func (t *Trainer) Run(ctx context.Context, maxIterations int64, progress func(Progress)) error {
	start := t.Clock.Now()
	for {
		if err := ctx.Err(); err != nil {
			return t.checkpointThen(err)
		}
		if t.Config.RuntimeBudget > 0 && t.Clock.Since(start) >= t.Config.RuntimeBudget {
			return t.checkpointThen(nil)
		}
		if maxIterations > 0 && t.iteration >= maxIterations {
			return t.checkpointThen(nil)
		}

		// The in-flight iteration runs to completion even if ctx is cancelled
		// meanwhile; cancellation is observed at the top of the loop.
		if err := t.iterate(context.WithoutCancel(ctx), t.iteration); err != nil {
			return err
		}
		t.iteration++

		if t.Config.CheckpointEvery > 0 && t.Config.CheckpointPath != "" && t.iteration%int64(t.Config.CheckpointEvery) == 0 {
			if err := SaveCheckpoint(t.Config.CheckpointPath, t.iteration, t.Regrets, t.Strategies); err != nil {
				return err
			}
		}
		if progress != nil {
			progress(Progress{
				Iteration:    t.iteration,
				RegretSize:   t.Regrets.Size(),
				StrategySize: t.Strategies.Size(),
				Elapsed:      t.Clock.Since(start),
			})
		}
	}
}

func (t *Trainer) checkpointThen(err error) error {
	if t.Config.CheckpointPath == "" {
		return err
	}
	if cerr := SaveCheckpoint(t.Config.CheckpointPath, t.iteration, t.Regrets, t.Strategies); cerr != nil && err == nil {
		return cerr
	}
	return err
}

// iterate runs ParallelTables independent root traversals concurrently
// (spec §5: "parallel independent traversals ... merge updates into shared
// R, S tables protected per-key"), each over its own freshly dealt game
// tree and its own private PRNG.
func (t *Trainer) iterate(ctx context.Context, iter int64) error {
	parallel := t.Config.ParallelTables
	if parallel <= 0 {
		parallel = 1
	}
	traverser, button := alternation(iter)

	g, gctx := errgroup.WithContext(ctx)
	for table := 0; table < parallel; table++ {
		seed := t.rng.Uint64()
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seed, seed^uint64(iter)))
			deck := poker.NewDeck(rng)
			root, err := game.NewRoot(t.Config.GameConfig, deck, button)
			if err != nil {
				return err
			}
			tr := NewTraverser(t.Regrets, t.Strategies, t.Keys, t.Eval, rng)
			_, err = tr.Traverse(gctx, root, traverser, 1.0)
			return err
		})
	}
	return g.Wait()
}

// alternation picks the traverser and the button for iteration iter (spec
// §4.8: "alternate the traverser i ∈ {0,1} per iteration (and alternate
// button between iterations)") — both flip on every iteration.
func alternation(iter int64) (traverser, button int) {
	return int(iter % 2), int(iter % 2)
}

// Blueprint materialises the average strategy accumulated so far.
func (t *Trainer) Blueprint() *Blueprint {
	return BuildBlueprint(t.iteration, t.Strategies)
}
