package abstraction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/notation"
	"github.com/lox/hunlsolver/poker"
)

// ErrArtifactExists guards the offline pipeline's file-existence checks
// (spec §4.3: "the file-existence check guards against accidental
// re-runs — do not overwrite"), mirroring the reference setup script's
// os.path.isfile idempotency guard.
var ErrArtifactExists = errors.New("abstraction: artifact already exists, refusing to overwrite")

// KMeansConfig groups the offline clustering knobs (spec §4.3, §6.5).
type KMeansConfig struct {
	K             int
	NInit         int
	MaxIter       int
	SubsampleSize int
	Seed          uint64
}

// DefaultKMeansConfig returns the reference configuration: k=50, n_init=1,
// max_iter=100, subsample up to 3,000,000 points.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{K: 50, NInit: 1, MaxIter: 100, SubsampleSize: 3_000_000, Seed: 1}
}

// WriteCombos persists the combo stream to combos.csv (spec §6.3: header
// "hand,board", rows of card-integer lists), refusing to overwrite an
// existing file.
func WriteCombos(ctx context.Context, path string, limit int) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrArtifactExists)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("abstraction: create combos file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"hand", "board"}); err != nil {
		return err
	}
	err = GenerateCombos(ctx, limit, func(c Combo) error {
		return w.Write([]string{cardIDs(c.Hand[:]), cardIDs(c.Board)})
	})
	if err != nil {
		return fmt.Errorf("abstraction: generate combos: %w", err)
	}
	w.Flush()
	return w.Error()
}

func cardIDs(cards []poker.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		s += strconv.Itoa(c.ID())
	}
	return s
}

// ExtractFeatures computes the 8-D equity vector for every combo and
// persists points.csv (spec §6.3: 8-column numeric equity points), refusing
// to overwrite an existing file.
func ExtractFeatures(ctx context.Context, path string, oracle equity.Oracle, tiers *notation.RangeTiers, combos []Combo, iterations int) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrArtifactExists)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("abstraction: create points file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, c := range combos {
		v, err := EquityVectorFor(ctx, oracle, tiers, c.Hand, c.Board, iterations)
		if err != nil {
			return err
		}
		row := make([]string, EquityDims)
		for i, x := range v {
			row[i] = strconv.FormatFloat(x, 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// TrainCentroids runs k-means over a random subsample of the feature points
// and returns a canonically-ordered centroid table (spec §4.3, steps 3-4).
// If k-means fails to fully converge within MaxIter, the current best
// assignment is kept rather than erroring (spec §4.3).
func TrainCentroids(points []EquityVector, cfg KMeansConfig) (*CentroidTable, error) {
	if cfg.K <= 0 {
		return nil, fmt.Errorf("abstraction: K must be > 0, got %d", cfg.K)
	}
	if len(points) < cfg.K {
		return nil, fmt.Errorf("abstraction: need at least K=%d points to cluster, have %d", cfg.K, len(points))
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x2545f4914f6cdd1d))
	sample := subsample(points, cfg.SubsampleSize, rng)

	nInit := cfg.NInit
	if nInit < 1 {
		nInit = 1
	}

	var best []EquityVector
	bestInertia := math.Inf(1)
	for init := 0; init < nInit; init++ {
		centroids := initCentroids(sample, cfg.K, rng)
		centroids, inertia := lloyd(sample, centroids, cfg.MaxIter)
		if inertia < bestInertia {
			bestInertia = inertia
			best = centroids
		}
	}

	sortByOriginDistance(best)
	return &CentroidTable{Centroids: best}, nil
}

// subsample returns up to n points chosen uniformly at random without
// replacement, via a partial Fisher-Yates shuffle over a copy.
func subsample(points []EquityVector, n int, rng *rand.Rand) []EquityVector {
	if n <= 0 || n >= len(points) {
		return points
	}
	pool := append([]EquityVector(nil), points...)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// initCentroids seeds k centroids by drawing distinct random points from the
// sample.
func initCentroids(points []EquityVector, k int, rng *rand.Rand) []EquityVector {
	idx := rng.Perm(len(points))[:k]
	out := make([]EquityVector, k)
	for i, p := range idx {
		out[i] = points[p]
	}
	return out
}

// lloyd runs Lloyd's algorithm to local convergence (or maxIter rounds,
// whichever comes first) and returns the final centroids alongside their
// total inertia (sum of squared distances to the assigned centroid).
func lloyd(points []EquityVector, centroids []EquityVector, maxIter int) ([]EquityVector, float64) {
	k := len(centroids)
	assignment := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := squaredDistance(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(p, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				changed = true
				assignment[i] = best
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, EquityDims)
		}
		for i, p := range points {
			c := assignment[i]
			floats.Add(sums[c], p[:])
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // empty cluster: keep its current centroid.
			}
			mean := sums[c]
			floats.Scale(1.0/float64(counts[c]), mean)
			copy(centroids[c][:], mean)
		}

		if !changed {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		inertia += squaredDistance(p, centroids[assignment[i]])
	}
	return centroids, inertia
}
