package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/forPelevin/blacksplit/internal/ports"
	"github.com/forPelevin/blacksplit/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/blacksplit/internal/progress"
	"github.com/forPelevin/blacksplit/internal/usecase"
)

type Config struct {
	InputFile       string
	OutputDirectory string
	OutputExtension string

	BlackMinDuration    float64
	PictureBlackRatioTh float64
	PixelBlackTh        float64

	// NumCuts > 0 limits cutting to that many cut points; 0 cuts at
	// every detected black period.
	NumCuts      int
	NoSplit      bool
	Reencode     bool
	ShowProgress bool

	// ReportWriter receives the JSON period document; nil disables it.
	ReportWriter io.Writer

	FFmpegPath string

	Log *zap.Logger
}

func (c Config) Validate() error {
	if c.InputFile == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputFile); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.BlackMinDuration < 0 {
		return errors.New("black min duration must be non-negative")
	}
	if c.PictureBlackRatioTh < 0 || c.PictureBlackRatioTh > 1 {
		return errors.New("picture black ratio threshold must be in [0, 1]")
	}
	if c.PixelBlackTh < 0 || c.PixelBlackTh > 1 {
		return errors.New("pixel black threshold must be in [0, 1]")
	}
	if c.NumCuts < 0 {
		return errors.New("cuts must be non-negative")
	}
	if c.OutputExtension == "" {
		return errors.New("output extension is empty")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	// adapters
	runner := ffmpeg.NewRunner(log)
	detector := ffmpeg.NewDetector(cfg.FFmpegPath, runner, log)
	cutter := ffmpeg.NewCutter(cfg.FFmpegPath, runner, log)

	outDir := cfg.OutputDirectory
	if outDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		outDir = wd
	}
	if !cfg.NoSplit {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	deps := usecase.Deps{
		Detector: detector,
		Cutter:   cutter,
		Log:      log,
	}
	if cfg.ShowProgress {
		deps.NewProgress = func() (ports.ProgressFunc, func()) {
			bar := progress.NewBar(os.Stderr)
			return bar.Set, bar.Finish
		}
	}

	uc := usecase.New(deps)
	res, err := uc.Run(ctx, usecase.Input{
		InputFile: cfg.InputFile,
		Detect: ports.DetectOptions{
			BlackMinDuration:    cfg.BlackMinDuration,
			PictureBlackRatioTh: cfg.PictureBlackRatioTh,
			PixelBlackTh:        cfg.PixelBlackTh,
		},
		OutputDirectory: outDir,
		OutputExtension: cfg.OutputExtension,
		NumCuts:         cfg.NumCuts,
		NoSplit:         cfg.NoSplit,
		Reencode:        cfg.Reencode,
		ReportWriter:    cfg.ReportWriter,
	})
	if err != nil {
		return err
	}

	log.Info("done",
		zap.Int("black_periods", len(res.BlackPeriods)),
		zap.Int("segments", len(res.OutputFiles)),
	)
	return nil
}

// ensure adapters implement ports
var _ ports.BlackDetector = (*ffmpeg.Detector)(nil)
var _ ports.Cutter = (*ffmpeg.Cutter)(nil)
var _ ports.ProcessRunner = (*ffmpeg.Runner)(nil)
