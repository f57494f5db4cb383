// Package periods holds the pure interval logic: inverting black periods
// into content periods, downsampling black periods to a requested cut
// count, and resolving content periods into concrete cut boundaries.
package periods

import (
	"sort"

	"github.com/forPelevin/blacksplit/internal/types"
)

// Invert maps black periods to the content periods between them.
//
// The input is sorted by start on a working copy, so detector output order
// does not matter. A black period starting exactly at the running cursor
// (including one starting at 0) produces no content period; it only
// advances the cursor. The cursor never moves backward, so overlapping or
// nested periods are swallowed rather than producing negative-length gaps.
// The final period is always open-ended.
func Invert(blackPeriods []types.BlackPeriod) []types.ContentPeriod {
	sorted := make([]types.BlackPeriod, len(blackPeriods))
	copy(sorted, blackPeriods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out []types.ContentPeriod
	previousEnd := 0.0
	for _, b := range sorted {
		if b.Start > previousEnd {
			end := b.Start
			out = append(out, types.ContentPeriod{Start: previousEnd, End: &end})
		}
		if b.End > previousEnd {
			previousEnd = b.End
		}
	}

	// open-ended tail to the end of the source
	out = append(out, types.ContentPeriod{Start: previousEnd})
	return out
}
