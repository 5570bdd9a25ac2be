// Package solver implements the MCCFR trainer (spec C8): the
// information-set encoder, regret matching, the recursive external-sampling
// traversal, and checkpointed training of the cumulative regret and
// cumulative strategy tables.
package solver

import (
	"hash/fnv"
	"sync"

	"github.com/lox/hunlsolver/game"
)

// allActions is the fixed, stable action alphabet every table entry is
// indexed against (spec §4.5, §6.4). Legality is a pure function of the
// information-set key (spec REDESIGN FLAGS, entry 2), so a table entry never
// needs to grow or change shape once allocated — only legal indices are ever
// touched for a given key.
var allActions = [...]game.Action{
	game.ActionFold,
	game.ActionCheck,
	game.ActionCall,
	game.ActionBetHalf,
	game.ActionBetPot,
	game.ActionBetAllIn,
	game.ActionRaisePot,
	game.ActionRaiseAllIn,
}

func actionIndex(a game.Action) int {
	for i, x := range allActions {
		if x == a {
			return i
		}
	}
	return -1
}

const tableShardCount = 64
const tableShardMask = tableShardCount - 1

type tableEntry struct {
	mu     sync.Mutex
	values [len(allActions)]float64
}

type tableShard struct {
	mu      sync.RWMutex
	entries map[string]*tableEntry
}

// Table is a sharded, concurrency-safe accumulator keyed by information-set
// string, with one float64 slot per action in the fixed alphabet. Both the
// cumulative regret table R and the cumulative strategy table S (spec §3)
// share this shape; updates are additive and safe under concurrent
// traversals (spec §5).
type Table struct {
	shards [tableShardCount]tableShard
}

// NewTable returns an empty table ready for use.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*tableEntry)
	}
	return t
}

func (t *Table) shardFor(key string) *tableShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &t.shards[h.Sum32()&tableShardMask]
}

func (t *Table) get(key string) *tableEntry {
	shard := t.shardFor(key)

	shard.mu.RLock()
	e, ok := shard.entries[key]
	shard.mu.RUnlock()
	if ok {
		return e
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if e, ok = shard.entries[key]; ok {
		return e
	}
	e = &tableEntry{}
	shard.entries[key] = e
	return e
}

// Add accumulates delta into the slot for action a at key (spec §4.8:
// "R[I][a] += …", "S[I][a] += …"). Actions outside the fixed alphabet are
// silently ignored; callers only ever pass legal actions.
func (t *Table) Add(key string, a game.Action, delta float64) {
	idx := actionIndex(a)
	if idx < 0 {
		return
	}
	e := t.get(key)
	e.mu.Lock()
	e.values[idx] += delta
	e.mu.Unlock()
}

// Values returns the accumulated values at key for exactly the given legal
// actions, zero-initialised for keys never visited before (spec §3: "zero
// on first visit").
func (t *Table) Values(key string, legal []game.Action) map[game.Action]float64 {
	e := t.get(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[game.Action]float64, len(legal))
	for _, a := range legal {
		if idx := actionIndex(a); idx >= 0 {
			out[a] = e.values[idx]
		}
	}
	return out
}

// Size returns the number of distinct information-set keys tracked.
func (t *Table) Size() int {
	total := 0
	for i := range t.shards {
		t.shards[i].mu.RLock()
		total += len(t.shards[i].entries)
		t.shards[i].mu.RUnlock()
	}
	return total
}

// Snapshot dumps the table as {key: {action: value}}, omitting zero-valued
// slots, for persistence (spec §6.3).
func (t *Table) Snapshot() map[string]map[game.Action]float64 {
	out := make(map[string]map[game.Action]float64)
	for i := range t.shards {
		t.shards[i].mu.RLock()
		for k, e := range t.shards[i].entries {
			e.mu.Lock()
			row := make(map[game.Action]float64)
			for idx, v := range e.values {
				if v != 0 {
					row[allActions[idx]] = v
				}
			}
			e.mu.Unlock()
			if len(row) > 0 {
				out[k] = row
			}
		}
		t.shards[i].mu.RUnlock()
	}
	return out
}

// LoadSnapshot restores a table from a persisted {key: {action: value}} map,
// used when resuming training from a checkpoint (spec §4.10).
func (t *Table) LoadSnapshot(data map[string]map[game.Action]float64) {
	for k, row := range data {
		e := t.get(k)
		e.mu.Lock()
		for a, v := range row {
			if idx := actionIndex(a); idx >= 0 {
				e.values[idx] = v
			}
		}
		e.mu.Unlock()
	}
}
