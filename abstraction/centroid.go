// Package abstraction implements the postflop hand-strength abstractor
// (spec §4.2-§4.4): the online bucket lookup consumed by the solver, and the
// offline k-means pipeline that produces the centroid table it reads.
package abstraction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// EquityDims is the dimensionality of the equity feature vector: one
// dimension per fixed opponent-range tier (spec §3, §4.4).
const EquityDims = 8

// EquityVector is an 8-D point in equity space: win probability of a hand on
// a given board against each of the 8 range tiers.
type EquityVector [EquityDims]float64

// squaredDistance returns the squared Euclidean distance between two
// vectors, used both for nearest-centroid lookup and canonical ordering.
func squaredDistance(a, b EquityVector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// CentroidTable is the trained, canonically-ordered list of K postflop
// cluster centroids (spec §3: "Postflop cluster centroids"). Index into the
// table is the postflop bucket id.
type CentroidTable struct {
	Centroids []EquityVector
}

// K returns the number of centroids (the reference configuration uses 50).
func (t *CentroidTable) K() int { return len(t.Centroids) }

// Nearest returns the index of the centroid closest to v in squared
// Euclidean distance, breaking ties toward the lowest index (spec §4.2,
// step 2).
func (t *CentroidTable) Nearest(v EquityVector) int {
	best := 0
	bestDist := squaredDistance(v, t.Centroids[0])
	for i := 1; i < len(t.Centroids); i++ {
		d := squaredDistance(v, t.Centroids[i])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// sortByOriginDistance orders centroids ascending by distance from the
// origin so bucket indices are roughly monotone in overall hand strength
// (spec §4.3, step 4).
func sortByOriginDistance(centroids []EquityVector) {
	var origin EquityVector
	sort.SliceStable(centroids, func(i, j int) bool {
		return squaredDistance(centroids[i], origin) < squaredDistance(centroids[j], origin)
	})
}

// SaveCentroids persists the table as centers.csv: K rows x 8 columns (spec
// §6.3).
func SaveCentroids(path string, t *CentroidTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("abstraction: create centers file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, c := range t.Centroids {
		row := make([]string, EquityDims)
		for i, v := range c {
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("abstraction: write centers row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// LoadCentroids reads a previously trained centroid table from centers.csv.
func LoadCentroids(path string) (*CentroidTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abstraction: open centers file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	var centroids []EquityVector
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("abstraction: read centers row: %w", err)
		}
		if len(row) != EquityDims {
			return nil, fmt.Errorf("abstraction: centers row has %d columns, want %d", len(row), EquityDims)
		}
		var v EquityVector
		for i, s := range row {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("abstraction: invalid centroid value %q: %w", s, err)
			}
			v[i] = f
		}
		centroids = append(centroids, v)
	}
	if len(centroids) == 0 {
		return nil, fmt.Errorf("abstraction: centers file %s is empty", path)
	}
	return &CentroidTable{Centroids: centroids}, nil
}
