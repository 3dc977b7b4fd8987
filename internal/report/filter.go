// Package report implements the ledger reporting and aggregation
// engine: filtering, ordering, grouping and summarizing of transaction
// snapshots. Every function is a pure transformation of its inputs;
// the reference instant for relative ranges is always an explicit
// parameter, never read from the clock.
package report

import (
	"strings"

	"tally/internal/core"
)

// Filter narrows a transaction collection. All active criteria combine
// conjunctively; a zero-value criterion passes everything.
type Filter struct {
	Start      core.Date // inclusive lower bound, zero = unbounded
	End        core.Date // inclusive upper bound, zero = unbounded
	Categories []string  // empty = all categories
	Search     string    // case-insensitive substring over Details
}

// Bounded reports whether both date bounds are set.
func (f Filter) Bounded() bool {
	return !f.Start.IsZero() && !f.End.IsZero()
}

// Match reports whether a single transaction satisfies every active
// criterion. Date comparison is day-granular and inclusive on both ends.
func (f Filter) Match(t core.Transaction) bool {
	if !f.Start.IsZero() && t.Date.BeforeDay(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.Date.AfterDay(f.End) {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if t.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(t.Details), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// Apply returns the subsequence of txs satisfying the filter. Relative
// input order is preserved; the input slice is never mutated.
func Apply(txs []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
