// Package identifier generates the human-readable record codes used across
// the tracker: PREFIX_YEAR_NNN, e.g. DDD_2024_101.
//
// The scheme is carried over from the original capture tool and is NOT
// authoritative: the numeric suffix is random in [100, 999], so collisions
// within a prefix and year are possible and are not checked against existing
// records. Interventions survive a collision because writes are upserts keyed
// by ID; for the append-only tables a collision surfaces as a gateway
// constraint violation. If uniqueness ever has to be guaranteed, switch to a
// monotonic sequence or UUIDs.
package identifier

import (
	"fmt"
	"math/rand"
	"time"
)

// Record prefixes
const (
	PrefixIntervention = "DDD"
	PrefixDecision     = "DEC"
	PrefixAction       = "ACT"
	PrefixOutcome      = "OUT"
)

// New generates a record code for the given prefix using the current year
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt generates a record code for the given prefix and point in time
func NewAt(prefix string, t time.Time) string {
	num := rand.Intn(900) + 100
	return fmt.Sprintf("%s_%d_%d", prefix, t.Year(), num)
}
