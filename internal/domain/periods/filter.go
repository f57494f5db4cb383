package periods

import (
	"errors"
	"math"

	"github.com/forPelevin/blacksplit/internal/types"
)

// ErrNoBlackPeriods is returned by Filter when there is nothing to select
// from. Callers must run detection first.
var ErrNoBlackPeriods = errors.New("no black periods detected")

// Filter downsamples blackPeriods to at most numCuts cut candidates.
//
// When numCuts covers the whole input, the input is returned unchanged.
// Otherwise numCuts ideal timepoints are spread evenly across the span up
// to the latest black end, and for each timepoint (in ascending order) the
// not-yet-selected period whose midpoint lies closest is picked. Ties go
// to the earlier pool entry. The result preserves selection order, not
// start order; Invert re-sorts, so downstream does not care. The input
// slice is never modified.
func Filter(blackPeriods []types.BlackPeriod, numCuts int) ([]types.BlackPeriod, error) {
	if len(blackPeriods) == 0 {
		return nil, ErrNoBlackPeriods
	}
	if numCuts >= len(blackPeriods) {
		return blackPeriods, nil
	}

	videoDuration := 0.0
	for _, p := range blackPeriods {
		if p.End > videoDuration {
			videoDuration = p.End
		}
	}

	pool := make([]types.BlackPeriod, len(blackPeriods))
	copy(pool, blackPeriods)

	selected := make([]types.BlackPeriod, 0, numCuts)
	for i := 0; i < numCuts; i++ {
		cutTime := videoDuration * float64(i+1) / float64(numCuts+1)

		best := 0
		bestDist := math.Abs(pool[0].Midpoint() - cutTime)
		for j := 1; j < len(pool); j++ {
			if d := math.Abs(pool[j].Midpoint() - cutTime); d < bestDist {
				best, bestDist = j, d
			}
		}

		selected = append(selected, pool[best])
		pool = append(pool[:best], pool[best+1:]...)
	}
	return selected, nil
}
