package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/forPelevin/blacksplit/internal/domain/periods"
	"github.com/forPelevin/blacksplit/internal/ports"
	"github.com/forPelevin/blacksplit/internal/types"
)

// ErrNothingToSplit signals that detection ran fine but found no black
// periods. Callers report it and exit non-zero without treating it as a
// hard failure.
var ErrNothingToSplit = errors.New("no black periods detected, nothing to split")

type Deps struct {
	Detector ports.BlackDetector
	Cutter   ports.Cutter
	Log      *zap.Logger

	// NewProgress, when set, is called once per external process and
	// returns the progress callback plus a completion func.
	NewProgress func() (ports.ProgressFunc, func())
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return Usecase{d: d}
}

type Input struct {
	InputFile       string
	Detect          ports.DetectOptions
	OutputDirectory string
	OutputExtension string

	// NumCuts > 0 downsamples the detected black periods to that many
	// cut points before inverting for the cut phase. 0 cuts at every
	// detected period.
	NumCuts  int
	NoSplit  bool
	Reencode bool

	// ReportWriter, when set, receives the JSON document of black and
	// content periods before any cutting begins.
	ReportWriter io.Writer
}

type Result struct {
	BlackPeriods   []types.BlackPeriod
	ContentPeriods []types.ContentPeriod
	OutputFiles    []string
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	onProgress, done := u.progress()
	black, err := u.d.Detector.Detect(ctx, in.InputFile, in.Detect, onProgress)
	done()
	if err != nil {
		return Result{}, err
	}
	if len(black) == 0 {
		return Result{}, ErrNothingToSplit
	}

	content := periods.Invert(black)
	res := Result{BlackPeriods: black, ContentPeriods: content}
	u.d.Log.Debug("periods detected",
		zap.Int("black", len(black)),
		zap.Int("content", len(content)),
	)

	if in.ReportWriter != nil {
		if err := writeReport(in.ReportWriter, black, content); err != nil {
			return res, err
		}
	}
	if in.NoSplit {
		return res, nil
	}

	// The report always reflects the full detection; filtering only
	// narrows what gets cut.
	cutPeriods := content
	if in.NumCuts > 0 {
		filtered, err := periods.Filter(black, in.NumCuts)
		if err != nil {
			return res, err
		}
		cutPeriods = periods.Invert(filtered)
	}

	boundaries, err := periods.Plan(cutPeriods)
	if err != nil {
		return res, err
	}

	for _, b := range boundaries {
		onProgress, done := u.progress()
		out, err := u.d.Cutter.Cut(ctx, in.InputFile, in.OutputDirectory, in.OutputExtension,
			ports.CutSpec{Start: b.Start, End: b.End, Reencode: in.Reencode}, onProgress)
		done()
		if err != nil {
			return res, err
		}
		u.d.Log.Info("wrote segment", zap.String("file", out))
		res.OutputFiles = append(res.OutputFiles, out)
	}
	return res, nil
}

func (u Usecase) progress() (ports.ProgressFunc, func()) {
	if u.d.NewProgress == nil {
		return nil, func() {}
	}
	return u.d.NewProgress()
}

func writeReport(w io.Writer, black []types.BlackPeriod, content []types.ContentPeriod) error {
	b, err := json.MarshalIndent(types.Report{
		BlackPeriods:   black,
		ContentPeriods: content,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
