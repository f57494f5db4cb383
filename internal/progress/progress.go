// Package progress renders a single-line percent bar for long-running
// external processes.
package progress

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// Bar writes a carriage-return-updated bar to w. It only repaints when
// the integer percent changes, so it is cheap to feed from a tight
// progress stream.
type Bar struct {
	w    io.Writer
	last int
}

func NewBar(w io.Writer) *Bar {
	return &Bar{w: w, last: -1}
}

// Set updates the bar to percent, clamped to [0..100].
func (b *Bar) Set(percent float64) {
	p := int(percent)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if p == b.last {
		return
	}
	b.last = p

	filled := p * barWidth / 100
	fmt.Fprintf(b.w, "\r[%s%s] %3d%%",
		strings.Repeat("=", filled),
		strings.Repeat(" ", barWidth-filled),
		p,
	)
}

// Finish completes the bar and terminates the line.
func (b *Bar) Finish() {
	b.Set(100)
	fmt.Fprintln(b.w)
}
