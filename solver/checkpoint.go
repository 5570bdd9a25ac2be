package solver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/hunlsolver/game"
)

// checkpointFileVersion bumps whenever the on-disk snapshot schema changes.
const checkpointFileVersion = 1

// tableSnapshot is the on-disk shape of a Table: {info_set_key ->
// {action -> number}} (spec §6.3).
type tableSnapshot struct {
	Version   int                                 `json:"version"`
	Iteration int64                               `json:"iteration"`
	Table     map[string]map[game.Action]float64  `json:"table"`
}

// SaveCheckpoint writes cumulative_regrets and cumulative_strategies
// snapshots atomically (write-then-rename, spec §4.10, §7): a crash
// mid-write leaves the previous checkpoint files intact.
func SaveCheckpoint(basePath string, iteration int64, regrets, strategies *Table) error {
	if err := saveTable(regretsPath(basePath), iteration, regrets); err != nil {
		return err
	}
	return saveTable(strategiesPath(basePath), iteration, strategies)
}

// LoadCheckpoint restores the regret and strategy tables from a previous
// checkpoint, returning the iteration count they were saved at. Missing
// files are reported via game.ErrInvalidInput-free os errors so callers can
// distinguish "never checkpointed" from a corrupt file.
func LoadCheckpoint(basePath string) (iteration int64, regrets, strategies *Table, err error) {
	iteration, regrets, err = loadTable(regretsPath(basePath))
	if err != nil {
		return 0, nil, nil, err
	}
	_, strategies, err = loadTable(strategiesPath(basePath))
	if err != nil {
		return 0, nil, nil, err
	}
	return iteration, regrets, strategies, nil
}

func regretsPath(base string) string    { return base + ".cumulative_regrets.json" }
func strategiesPath(base string) string { return base + ".cumulative_strategies.json" }

func saveTable(path string, iteration int64, t *Table) error {
	snap := tableSnapshot{
		Version:   checkpointFileVersion,
		Iteration: iteration,
		Table:     t.Snapshot(),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("solver: create checkpoint dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("solver: create checkpoint temp file: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: encode checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: close checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: persist checkpoint: %w", err)
	}
	return nil
}

func loadTable(path string) (int64, *Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("solver: read checkpoint %s: %w", path, err)
	}
	var snap tableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, nil, fmt.Errorf("solver: decode checkpoint %s: %w", path, err)
	}
	t := NewTable()
	t.LoadSnapshot(snap.Table)
	return snap.Iteration, t, nil
}
