package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/forPelevin/blacksplit/internal/pipeline"
	"github.com/forPelevin/blacksplit/pkg/logger"
)

// envConfig carries the settings that come from the environment rather
// than flags: tool locations and diagnostics.
type envConfig struct {
	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
}

func run(cmd *cobra.Command, input string) error {
	blackMinDuration, _ := cmd.Flags().GetFloat64("black-min-duration")
	pictureBlackRatioTh, _ := cmd.Flags().GetFloat64("picture-black-ratio-th")
	pixelBlackTh, _ := cmd.Flags().GetFloat64("pixel-black-th")
	outDir, _ := cmd.Flags().GetString("output-directory")
	outExt, _ := cmd.Flags().GetString("output-extension")
	numCuts, _ := cmd.Flags().GetInt("cuts")
	noSplit, _ := cmd.Flags().GetBool("no-split")
	noCopy, _ := cmd.Flags().GetBool("no-copy")
	showProgress, _ := cmd.Flags().GetBool("progress")
	verbose, _ := cmd.Flags().GetBool("verbose")

	ec := envConfig{}
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if verbose {
		ec.LogLevel = "debug"
	}

	log, err := logger.New(ec.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		InputFile:           absIn,
		OutputDirectory:     outDir,
		OutputExtension:     outExt,
		BlackMinDuration:    blackMinDuration,
		PictureBlackRatioTh: pictureBlackRatioTh,
		PixelBlackTh:        pixelBlackTh,
		NumCuts:             numCuts,
		NoSplit:             noSplit,
		Reencode:            noCopy,
		ShowProgress:        showProgress,
		FFmpegPath:          ec.FFmpegPath,
		Log:                 log,
	}
	if verbose {
		cfg.ReportWriter = cmd.OutOrStdout()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}
