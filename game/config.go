package game

import "fmt"

// Config holds the table-stakes parameters a History is built from (spec
// §6.5: STARTING_STACK=200, SB=1, BB=2 in the reference configuration).
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingStack int
}

// DefaultConfig returns the reference stakes.
func DefaultConfig() Config {
	return Config{SmallBlind: 1, BigBlind: 2, StartingStack: 200}
}

// Validate rejects a stakes configuration that could never satisfy the
// stacks+pot==2*StartingStack invariant (spec §3).
func (c Config) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("game: small blind must be > 0, got %d", c.SmallBlind)
	}
	if c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("game: big blind (%d) must exceed small blind (%d)", c.BigBlind, c.SmallBlind)
	}
	if c.StartingStack < c.BigBlind {
		return fmt.Errorf("game: starting stack (%d) must be at least one big blind (%d)", c.StartingStack, c.BigBlind)
	}
	return nil
}
