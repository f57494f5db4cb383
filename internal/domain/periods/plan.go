package periods

import (
	"errors"

	"github.com/forPelevin/blacksplit/internal/types"
)

// ErrNoContentPeriods is returned by Plan when there is no segment to cut.
var ErrNoContentPeriods = errors.New("no content periods detected")

// Boundary is one resolved cut handed to the cutter. A nil End means
// "until end of source".
type Boundary struct {
	Start float64
	End   *float64
}

// Plan turns content periods into cut boundaries, one per output file, in
// sequence order. An open-ended period that is not the last element is
// resolved against its successor's start; in practice only the last
// period is ever open, so that path is a consistency guard.
func Plan(contentPeriods []types.ContentPeriod) ([]Boundary, error) {
	if len(contentPeriods) == 0 {
		return nil, ErrNoContentPeriods
	}

	out := make([]Boundary, 0, len(contentPeriods))
	for i, p := range contentPeriods {
		end := p.End
		if end == nil && i < len(contentPeriods)-1 {
			next := contentPeriods[i+1].Start
			end = &next
		}
		out = append(out, Boundary{Start: p.Start, End: end})
	}
	return out, nil
}
