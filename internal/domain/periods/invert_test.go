package periods

import (
	"fmt"
	"strings"
	"testing"

	"github.com/forPelevin/blacksplit/internal/types"
)

func bp(start, end float64) types.BlackPeriod {
	return types.BlackPeriod{Start: start, End: end, Duration: end - start}
}

func cp(start, end float64) types.ContentPeriod {
	return types.ContentPeriod{Start: start, End: &end}
}

func open(start float64) types.ContentPeriod {
	return types.ContentPeriod{Start: start}
}

func TestInvert_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		black []types.BlackPeriod
		want  []types.ContentPeriod
	}{
		{
			name:  "empty input yields single open period from zero",
			black: nil,
			want:  []types.ContentPeriod{open(0)},
		},
		{
			name:  "leading black at zero is swallowed",
			black: []types.BlackPeriod{bp(0, 5)},
			want:  []types.ContentPeriod{open(5)},
		},
		{
			name:  "three periods starting at zero",
			black: []types.BlackPeriod{bp(0, 5), bp(10, 15), bp(20, 25)},
			want:  []types.ContentPeriod{cp(5, 10), cp(15, 20), open(25)},
		},
		{
			name:  "content before first black",
			black: []types.BlackPeriod{bp(3, 5)},
			want:  []types.ContentPeriod{cp(0, 3), open(5)},
		},
		{
			name:  "unsorted detector output is sorted first",
			black: []types.BlackPeriod{bp(20, 25), bp(0, 5), bp(10, 15)},
			want:  []types.ContentPeriod{cp(5, 10), cp(15, 20), open(25)},
		},
		{
			name:  "adjacent blacks produce no zero-length content",
			black: []types.BlackPeriod{bp(0, 5), bp(5, 8)},
			want:  []types.ContentPeriod{open(8)},
		},
		{
			name:  "nested black period is swallowed",
			black: []types.BlackPeriod{bp(0, 10), bp(2, 4), bp(15, 20)},
			want:  []types.ContentPeriod{cp(10, 15), open(20)},
		},
		{
			name:  "overlap cannot move the cursor backward",
			black: []types.BlackPeriod{bp(0, 10), bp(4, 6), bp(11, 12)},
			want:  []types.ContentPeriod{cp(10, 11), open(12)},
		},
		{
			name:  "fractional seconds",
			black: []types.BlackPeriod{bp(0, 4.96), bp(20, 24.96)},
			want:  []types.ContentPeriod{cp(4.96, 20), open(24.96)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Invert(tt.black)
			assertContentPeriods(t, got, tt.want)
		})
	}
}

func TestInvert_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []types.BlackPeriod{bp(20, 25), bp(0, 5)}
	Invert(in)
	if in[0].Start != 20 || in[1].Start != 0 {
		t.Fatalf("input slice was reordered: %v", in)
	}
}

func TestInvert_LastPeriodAlwaysOpen(t *testing.T) {
	t.Parallel()

	got := Invert([]types.BlackPeriod{bp(0, 5), bp(7, 9)})
	last := got[len(got)-1]
	if last.End != nil {
		t.Fatalf("expected open final period, got end=%v", *last.End)
	}
	for _, p := range got[:len(got)-1] {
		if p.End == nil {
			t.Fatalf("open period before the end of the sequence: %+v", got)
		}
	}
}

func assertContentPeriods(t *testing.T, got, want []types.ContentPeriod) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d content periods, got %d: %s", len(want), len(got), fmtPeriods(got))
	}
	for i := range want {
		if got[i].Start != want[i].Start {
			t.Fatalf("period %d: expected start %v, got %v", i, want[i].Start, got[i].Start)
		}
		switch {
		case want[i].End == nil && got[i].End != nil:
			t.Fatalf("period %d: expected open end, got %v", i, *got[i].End)
		case want[i].End != nil && got[i].End == nil:
			t.Fatalf("period %d: expected end %v, got open", i, *want[i].End)
		case want[i].End != nil && *got[i].End != *want[i].End:
			t.Fatalf("period %d: expected end %v, got %v", i, *want[i].End, *got[i].End)
		}
	}
}

func fmtPeriods(ps []types.ContentPeriod) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range ps {
		if i > 0 {
			b.WriteByte(' ')
		}
		if p.End == nil {
			fmt.Fprintf(&b, "{%v,open}", p.Start)
		} else {
			fmt.Fprintf(&b, "{%v,%v}", p.Start, *p.End)
		}
	}
	b.WriteByte(']')
	return b.String()
}
