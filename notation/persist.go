package notation

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveHandToRangeMap persists the reverse lookup "shorthand hand -> range id"
// as HAND_TO_RANGE_MAP.json (spec §6.3).
func SaveHandToRangeMap(path string, rt *RangeTiers) error {
	data, err := json.MarshalIndent(rt.handToTier, "", "  ")
	if err != nil {
		return fmt.Errorf("notation: marshal hand-to-range map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("notation: write hand-to-range map: %w", err)
	}
	return nil
}

// SaveRangeToHandsMap persists the forward lookup "range id -> shorthand
// hands" as RANGE_TO_HANDS_MAP.json (spec §6.3).
func SaveRangeToHandsMap(path string, rt *RangeTiers) error {
	out := make(map[string][]string, RangeTierCount)
	for id := 0; id < RangeTierCount; id++ {
		out[fmt.Sprintf("%d", id)] = rt.Hands(id)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("notation: marshal range-to-hands map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("notation: write range-to-hands map: %w", err)
	}
	return nil
}
