package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/hunlsolver/abstraction"
	"github.com/lox/hunlsolver/config"
	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/notation"
	"github.com/lox/hunlsolver/solver"
)

var cli struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"path to an HCL configuration file" default:"solver.hcl"`

	Abstract AbstractCmd `cmd:"" help:"run the offline abstraction pipeline and write its artifacts"`
	Train    TrainCmd    `cmd:"" help:"run MCCFR training and emit a blueprint"`
	Inspect  InspectCmd  `cmd:"" help:"look up a blueprint's strategy at an information-set key"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("HUNL MCCFR solver"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	var runErr error
	switch ctx.Command() {
	case "abstract":
		runErr = cli.Abstract.Run(context.Background(), cfg)
	case "train":
		runErr = cli.Train.Run(context.Background(), cfg)
	case "inspect":
		runErr = cli.Inspect.Run(context.Background())
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Str("command", ctx.Command()).Msg("command failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

// AbstractCmd runs the offline k-means abstraction pipeline (spec §4.3):
// generate training combos, extract equity features, cluster, and persist
// every artifact named in spec §6.3.
type AbstractCmd struct {
	Out       string `help:"output directory for the pipeline artifacts" required:""`
	Limit     int    `help:"maximum number of (hand,board) combos to generate" default:"200000"`
	Oracle    int    `help:"Monte-Carlo iterations per equity-vector tier" default:"2000"`
	Overwrite bool   `help:"remove existing artifacts before running"`
}

func (cmd *AbstractCmd) Run(ctx context.Context, cfg *config.File) error {
	if err := os.MkdirAll(cmd.Out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tiers, err := notation.DefaultRangeTiers()
	if err != nil {
		return fmt.Errorf("build range tiers: %w", err)
	}

	combosPath := cmd.Out + "/combos.csv"
	pointsPath := cmd.Out + "/points.csv"
	centersPath := cmd.Out + "/centers.csv"
	handMapPath := cmd.Out + "/HAND_TO_RANGE_MAP.json"
	rangeMapPath := cmd.Out + "/RANGE_TO_HANDS_MAP.json"

	if cmd.Overwrite {
		for _, p := range []string{combosPath, pointsPath, centersPath, handMapPath, rangeMapPath} {
			os.Remove(p)
		}
	}

	if err := notation.SaveHandToRangeMap(handMapPath, tiers); err != nil {
		return err
	}
	if err := notation.SaveRangeToHandsMap(rangeMapPath, tiers); err != nil {
		return err
	}

	log.Info().Int("limit", cmd.Limit).Msg("generating training combos")
	if err := abstraction.WriteCombos(ctx, combosPath, cmd.Limit); err != nil {
		return err
	}

	// GenerateCombos is a deterministic pure function of limit, so replaying
	// it here to build the in-memory slice yields the same combos just
	// written to combos.csv.
	var combos []abstraction.Combo
	if err := abstraction.GenerateCombos(ctx, cmd.Limit, func(c abstraction.Combo) error {
		combos = append(combos, c)
		return nil
	}); err != nil {
		return err
	}

	oracle := equity.NewMonteCarloOracle(equity.SimpleEvaluator{}, cfg.TrainingConfig().Seed)
	log.Info().Int("combos", len(combos)).Msg("extracting equity features")
	if err := abstraction.ExtractFeatures(ctx, pointsPath, oracle, tiers, combos, cmd.Oracle); err != nil {
		return err
	}

	points := make([]abstraction.EquityVector, len(combos))
	for i, c := range combos {
		v, err := abstraction.EquityVectorFor(ctx, oracle, tiers, c.Hand, c.Board, cmd.Oracle)
		if err != nil {
			return err
		}
		points[i] = v
	}

	log.Info().Int("k", cfg.KMeansConfig().K).Msg("training centroids")
	table, err := abstraction.TrainCentroids(points, cfg.KMeansConfig())
	if err != nil {
		return err
	}
	if err := abstraction.SaveCentroids(centersPath, table); err != nil {
		return err
	}

	log.Info().Str("out", cmd.Out).Msg("abstraction pipeline complete")
	return nil
}

// TrainCmd runs MCCFR training to a fixed iteration count or wall-clock
// budget and saves the resulting blueprint (spec §4.8, §4.10).
type TrainCmd struct {
	Out         string `help:"path to write the trained blueprint" required:""`
	Centroids   string `help:"path to a trained centers.csv" required:""`
	Iterations  int64  `help:"maximum MCCFR iterations (0 = runtime budget only)" default:"0"`
	ResumeFrom  string `help:"resume training from a checkpoint base path"`
	ProgressLog int    `help:"log progress every N iterations" default:"100"`
}

func (cmd *TrainCmd) Run(ctx context.Context, cfg *config.File) error {
	centroids, err := abstraction.LoadCentroids(cmd.Centroids)
	if err != nil {
		return fmt.Errorf("%w: %v", solver.ErrIOError, err)
	}
	tiers, err := notation.DefaultRangeTiers()
	if err != nil {
		return err
	}

	trainCfg := cfg.TrainingConfig()
	oracle := equity.NewMonteCarloOracle(equity.SimpleEvaluator{}, trainCfg.Seed)
	bucketer := abstraction.NewKMeansBucketer(centroids, tiers, oracle, trainCfg.EquityIterations)

	trainer, err := solver.NewTrainer(trainCfg, bucketer, equity.SimpleEvaluator{})
	if err != nil {
		return err
	}
	if cmd.ResumeFrom != "" {
		if err := trainer.Resume(cmd.ResumeFrom); err != nil {
			return fmt.Errorf("resume training: %w", err)
		}
		log.Info().Int64("iteration", trainer.Iteration()).Str("checkpoint", cmd.ResumeFrom).Msg("resumed training")
	}

	start := time.Now()
	progress := func(p solver.Progress) {
		if cmd.ProgressLog <= 0 || p.Iteration%int64(cmd.ProgressLog) != 0 {
			return
		}
		log.Info().
			Int64("iteration", p.Iteration).
			Int("regrets", p.RegretSize).
			Int("strategies", p.StrategySize).
			Dur("elapsed", p.Elapsed).
			Msg("training progress")
	}

	if err := trainer.Run(ctx, cmd.Iterations, progress); err != nil {
		return err
	}

	bp := trainer.Blueprint()
	if err := bp.Save(cmd.Out); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	log.Info().
		Dur("duration", time.Since(start)).
		Int("infosets", len(bp.Strategies)).
		Str("path", cmd.Out).
		Msg("training complete")
	return nil
}

// InspectCmd looks up the trained strategy at a single information-set key,
// for manual debugging of a finished blueprint.
type InspectCmd struct {
	Blueprint string `help:"path to a trained blueprint" required:""`
	Key       string `help:"exact information-set key to look up" required:""`
}

func (cmd *InspectCmd) Run(ctx context.Context) error {
	bp, err := solver.LoadBlueprint(cmd.Blueprint)
	if err != nil {
		return err
	}
	strategy, ok := bp.Strategy(cmd.Key)
	if !ok {
		return fmt.Errorf("no strategy recorded for key %q", cmd.Key)
	}
	for action, p := range strategy {
		fmt.Printf("%s\t%.4f\n", action, p)
	}
	return nil
}
