package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/forPelevin/blacksplit/internal/ports"
)

type Cutter struct {
	ffmpeg string
	runner ports.ProcessRunner
	log    *zap.Logger
}

func NewCutter(ffmpegPath string, runner ports.ProcessRunner, log *zap.Logger) *Cutter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cutter{ffmpeg: ffmpegPath, runner: runner, log: log}
}

func (c *Cutter) Cut(ctx context.Context, inputFile, outputDirectory, extension string, spec ports.CutSpec, onProgress ports.ProgressFunc) (string, error) {
	outputFile := outputPath(inputFile, outputDirectory, extension, spec.Start, spec.End)

	args := []string{
		"-hide_banner",
		"-y",
		"-ss", formatSeconds(spec.Start),
		"-i", inputFile,
	}
	if spec.End != nil {
		args = append(args, "-t", formatSeconds(*spec.End-spec.Start))
	}
	if spec.Reencode {
		args = append(args, "-c:v", "libx264", "-c:a", "aac")
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, "-map", "0", outputFile)

	c.log.Debug("running ffmpeg command", zap.Strings("args", append([]string{c.ffmpeg}, args...)))

	if _, err := c.runner.Run(ctx, c.ffmpeg, args, onProgress); err != nil {
		return "", fmt.Errorf("ffmpeg cut %s: %w", filepath.Base(outputFile), err)
	}
	return outputFile, nil
}

// outputPath builds "<dir>/<basename>_<start>-<end>.<ext>"; an open end
// leaves the part after the dash empty ("input_25.0-.mkv").
func outputPath(inputFile, outputDirectory, extension string, start float64, end *float64) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	endStr := ""
	if end != nil {
		endStr = formatSeconds(*end)
	}
	name := fmt.Sprintf("%s_%s-%s.%s", base, formatSeconds(start), endStr, extension)
	return filepath.Join(outputDirectory, name)
}

// formatSeconds renders a float the way the period filenames expect:
// shortest representation, but whole numbers keep a trailing ".0"
// (5 -> "5.0", 10.5 -> "10.5", 0.98 -> "0.98").
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
