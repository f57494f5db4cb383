package periods

import (
	"errors"
	"testing"

	"github.com/forPelevin/blacksplit/internal/types"
)

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 5} {
		if _, err := Filter(nil, n); !errors.Is(err, ErrNoBlackPeriods) {
			t.Fatalf("numCuts=%d: expected ErrNoBlackPeriods, got %v", n, err)
		}
	}
}

func TestFilter_IdentityWhenCutsCoverInput(t *testing.T) {
	t.Parallel()

	in := []types.BlackPeriod{bp(0, 5), bp(10, 15), bp(20, 25)}
	for _, n := range []int{3, 4, 100} {
		got, err := Filter(in, n)
		if err != nil {
			t.Fatalf("numCuts=%d: %v", n, err)
		}
		if len(got) != len(in) {
			t.Fatalf("numCuts=%d: expected identity, got %d periods", n, len(got))
		}
		for i := range in {
			if got[i] != in[i] {
				t.Fatalf("numCuts=%d: period %d changed: %+v", n, i, got[i])
			}
		}
	}
}

func TestFilter_Selection(t *testing.T) {
	t.Parallel()

	in := []types.BlackPeriod{bp(0, 5), bp(10, 15), bp(20, 25)}

	tests := []struct {
		name    string
		numCuts int
		want    []types.BlackPeriod
	}{
		{
			// single ideal timepoint at 12.5, midpoints 2.5/12.5/22.5
			name:    "one cut picks the middle period",
			numCuts: 1,
			want:    []types.BlackPeriod{bp(10, 15)},
		},
		{
			// ideal timepoints 8.33 and 16.67; the middle midpoint
			// 12.5 is nearest the first, then the pool only offers
			// 2.5 and 22.5 for the second
			name:    "two cuts pick the middle then the late period",
			numCuts: 2,
			want:    []types.BlackPeriod{bp(10, 15), bp(20, 25)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Filter(in, tt.numCuts)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d periods, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("period %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFilter_SelectionOrderFollowsTimepoints(t *testing.T) {
	t.Parallel()

	// Midpoints 16, 12.5, 28.5 over a 30s span; ideal timepoints for
	// two cuts are 10 and 20. The first timepoint selects the short
	// mid-video period, the second selects the long early-start one,
	// so the result is not sorted by start. Invert re-sorts downstream.
	in := []types.BlackPeriod{bp(2, 30), bp(12, 13), bp(28, 29)}
	got, err := Filter(in, 2)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got[0] != in[1] || got[1] != in[0] {
		t.Fatalf("unexpected selection order: %+v", got)
	}
}

func TestFilter_SequentialNarrowing(t *testing.T) {
	t.Parallel()

	// Filtering to one cut takes the middle period; filtering what
	// remains to two cuts covers the whole pool and returns the outer
	// periods unchanged, in order.
	in := []types.BlackPeriod{bp(0, 5), bp(10, 15), bp(20, 25)}
	first, err := Filter(in, 1)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if first[0] != in[1] {
		t.Fatalf("expected middle period, got %+v", first[0])
	}

	remaining := []types.BlackPeriod{in[0], in[2]}
	second, err := Filter(remaining, 2)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(second) != 2 || second[0] != in[0] || second[1] != in[2] {
		t.Fatalf("expected outer periods in order, got %+v", second)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []types.BlackPeriod{bp(0, 5), bp(10, 15), bp(20, 25)}
	if _, err := Filter(in, 1); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if in[0] != bp(0, 5) || in[1] != bp(10, 15) || in[2] != bp(20, 25) {
		t.Fatalf("input slice was modified: %+v", in)
	}
}

func TestFilter_TieGoesToEarlierPoolEntry(t *testing.T) {
	t.Parallel()

	// Two periods with midpoints equidistant from the single ideal
	// timepoint at 5: midpoints 4 and 6.
	in := []types.BlackPeriod{bp(3, 5), bp(5, 7), bp(9, 10)}
	got, err := Filter(in, 1)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got[0] != in[0] {
		t.Fatalf("expected first pool entry to win the tie, got %+v", got[0])
	}
}
