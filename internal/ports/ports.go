package ports

import (
	"context"

	"github.com/forPelevin/blacksplit/internal/types"
)

// ProgressFunc receives percentages in [0..100] while an external process
// runs. Implementations must tolerate a nil function.
type ProgressFunc func(percent float64)

// DetectOptions are passed through to the external black-frame detector.
type DetectOptions struct {
	// BlackMinDuration is the minimum detected black duration in seconds.
	BlackMinDuration float64
	// PictureBlackRatioTh is the threshold for considering a picture black.
	PictureBlackRatioTh float64
	// PixelBlackTh is the threshold for considering a pixel black.
	PixelBlackTh float64
}

// BlackDetector finds black periods in a source file. A source with no
// black frames yields an empty slice and a nil error.
type BlackDetector interface {
	Detect(ctx context.Context, inputFile string, opts DetectOptions, onProgress ProgressFunc) ([]types.BlackPeriod, error)
}

// CutSpec describes one segment to extract. A nil End means "until the
// end of the source".
type CutSpec struct {
	Start float64
	End   *float64
	// Reencode forces a re-encode instead of stream-copy.
	Reencode bool
}

// Cutter extracts one segment of the source into outputDirectory and
// returns the path of the file it wrote.
type Cutter interface {
	Cut(ctx context.Context, inputFile, outputDirectory, extension string, spec CutSpec, onProgress ProgressFunc) (string, error)
}

// RunResult carries what an external process left behind.
type RunResult struct {
	Stderr string
}

// ProcessRunner executes an external command, streaming progress while it
// runs and capturing diagnostics for the caller to parse.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args []string, onProgress ProgressFunc) (RunResult, error)
}
