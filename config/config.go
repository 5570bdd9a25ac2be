// Package config loads the solver's HCL configuration file (spec §6.5):
// table stakes, abstraction knobs, and training knobs. A missing file yields
// the reference values. In a file that exists, each of the game, abstraction
// and training blocks must be present (an empty block is accepted); any field
// left unset or zero inside a block takes its reference value.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/hunlsolver/abstraction"
	"github.com/lox/hunlsolver/game"
	"github.com/lox/hunlsolver/solver"
)

// File is the top-level HCL document shape for a solver run.
type File struct {
	Game        GameBlock        `hcl:"game,block"`
	Abstraction AbstractionBlock `hcl:"abstraction,block"`
	Training    TrainingBlock    `hcl:"training,block"`
}

// GameBlock configures table stakes (spec §6.5: SB=1, BB=2, STARTING_STACK=200).
type GameBlock struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
}

// AbstractionBlock configures the offline k-means pipeline and the live
// equity featurizer (spec §4.3, §6.5: K=50 buckets).
type AbstractionBlock struct {
	Buckets          int `hcl:"buckets,optional"`
	NInit            int `hcl:"n_init,optional"`
	MaxIter          int `hcl:"max_iter,optional"`
	SubsampleSize    int `hcl:"subsample_size,optional"`
	EquityIterations int `hcl:"equity_iterations,optional"`
}

// TrainingBlock configures the MCCFR trainer (spec §4.10, §6.5:
// checkpoint_interval=100 traversals, runtime budget 28,000s).
type TrainingBlock struct {
	Seed                 int    `hcl:"seed,optional"`
	ParallelTables       int    `hcl:"parallel_tables,optional"`
	CheckpointEvery      int    `hcl:"checkpoint_every,optional"`
	CheckpointPath       string `hcl:"checkpoint_path,optional"`
	RuntimeBudgetSeconds int    `hcl:"runtime_budget_seconds,optional"`
}

// Default returns the reference configuration.
func Default() *File {
	return &File{
		Game: GameBlock{SmallBlind: 1, BigBlind: 2, StartingStack: 200},
		Abstraction: AbstractionBlock{
			Buckets:          50,
			NInit:            1,
			MaxIter:          100,
			SubsampleSize:    3_000_000,
			EquityIterations: abstraction.EquityIterations,
		},
		Training: TrainingBlock{
			Seed:                 1,
			ParallelTables:       1,
			CheckpointEvery:      100,
			RuntimeBudgetSeconds: 28_000,
		},
	}
}

// Load reads an HCL configuration file, falling back to the reference
// defaults if the file doesn't exist, and filling in any block field left
// unset with its reference default (spec §6.5).
func Load(path string) (*File, error) {
	def := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return def, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	f.applyDefaults(def)
	return &f, nil
}

func (f *File) applyDefaults(def *File) {
	if f.Game.SmallBlind == 0 {
		f.Game.SmallBlind = def.Game.SmallBlind
	}
	if f.Game.BigBlind == 0 {
		f.Game.BigBlind = def.Game.BigBlind
	}
	if f.Game.StartingStack == 0 {
		f.Game.StartingStack = def.Game.StartingStack
	}

	if f.Abstraction.Buckets == 0 {
		f.Abstraction.Buckets = def.Abstraction.Buckets
	}
	if f.Abstraction.NInit == 0 {
		f.Abstraction.NInit = def.Abstraction.NInit
	}
	if f.Abstraction.MaxIter == 0 {
		f.Abstraction.MaxIter = def.Abstraction.MaxIter
	}
	if f.Abstraction.SubsampleSize == 0 {
		f.Abstraction.SubsampleSize = def.Abstraction.SubsampleSize
	}
	if f.Abstraction.EquityIterations == 0 {
		f.Abstraction.EquityIterations = def.Abstraction.EquityIterations
	}

	if f.Training.Seed == 0 {
		f.Training.Seed = def.Training.Seed
	}
	if f.Training.ParallelTables == 0 {
		f.Training.ParallelTables = def.Training.ParallelTables
	}
	if f.Training.CheckpointEvery == 0 {
		f.Training.CheckpointEvery = def.Training.CheckpointEvery
	}
	if f.Training.RuntimeBudgetSeconds == 0 {
		f.Training.RuntimeBudgetSeconds = def.Training.RuntimeBudgetSeconds
	}
}

// GameConfig converts the HCL block into a game.Config.
func (f *File) GameConfig() game.Config {
	return game.Config{SmallBlind: f.Game.SmallBlind, BigBlind: f.Game.BigBlind, StartingStack: f.Game.StartingStack}
}

// KMeansConfig converts the HCL block into an abstraction.KMeansConfig.
func (f *File) KMeansConfig() abstraction.KMeansConfig {
	return abstraction.KMeansConfig{
		K:             f.Abstraction.Buckets,
		NInit:         f.Abstraction.NInit,
		MaxIter:       f.Abstraction.MaxIter,
		SubsampleSize: f.Abstraction.SubsampleSize,
		Seed:          uint64(f.Training.Seed),
	}
}

// TrainingConfig converts the HCL document into a solver.TrainingConfig.
func (f *File) TrainingConfig() solver.TrainingConfig {
	return solver.TrainingConfig{
		GameConfig:       f.GameConfig(),
		Seed:             uint64(f.Training.Seed),
		ParallelTables:   f.Training.ParallelTables,
		CheckpointEvery:  f.Training.CheckpointEvery,
		CheckpointPath:   f.Training.CheckpointPath,
		RuntimeBudget:    time.Duration(f.Training.RuntimeBudgetSeconds) * time.Second,
		EquityIterations: f.Abstraction.EquityIterations,
	}
}
