// Package ffmpeg adapts the external ffmpeg binary to the detector,
// cutter and process-runner ports.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/forPelevin/blacksplit/internal/ports"
	"github.com/forPelevin/blacksplit/internal/types"
)

// ErrBadDetectLine reports a blackdetect diagnostic line that matched the
// filter tag but did not carry all three numeric fields. The detector
// contract is violated, so the run aborts.
var ErrBadDetectLine = errors.New("could not parse blackdetect line")

var (
	blackStartRe    = regexp.MustCompile(`black_start:(\d+(?:\.\d+)?)`)
	blackEndRe      = regexp.MustCompile(`black_end:(\d+(?:\.\d+)?)`)
	blackDurationRe = regexp.MustCompile(`black_duration:(\d+(?:\.\d+)?)`)
)

type Detector struct {
	ffmpeg string
	runner ports.ProcessRunner
	log    *zap.Logger
}

func NewDetector(ffmpegPath string, runner ports.ProcessRunner, log *zap.Logger) *Detector {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{ffmpeg: ffmpegPath, runner: runner, log: log}
}

func (d *Detector) Detect(ctx context.Context, inputFile string, opts ports.DetectOptions, onProgress ports.ProgressFunc) ([]types.BlackPeriod, error) {
	args := detectArgs(inputFile, opts)
	d.log.Debug("running ffmpeg command", zap.Strings("args", append([]string{d.ffmpeg}, args...)))

	res, err := d.runner.Run(ctx, d.ffmpeg, args, onProgress)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg blackdetect: %w", err)
	}

	black, err := parseBlackdetect(res.Stderr)
	if err != nil {
		return nil, err
	}
	if len(black) == 0 {
		d.log.Info("no black periods detected")
	}
	return black, nil
}

func detectArgs(inputFile string, opts ports.DetectOptions) []string {
	filter := fmt.Sprintf(
		"blackdetect=black_min_duration=%s:picture_black_ratio_th=%s:pixel_black_th=%s",
		formatSeconds(opts.BlackMinDuration),
		formatSeconds(opts.PictureBlackRatioTh),
		formatSeconds(opts.PixelBlackTh),
	)
	return []string{
		"-hide_banner",
		"-y",
		"-i", inputFile,
		"-vf", filter,
		"-an",
		"-f", "null",
		"-",
	}
}

// parseBlackdetect extracts black periods from ffmpeg stderr lines like
//
//	[blackdetect @ 0x137f36f30] black_start:20 black_end:24.96 black_duration:4.96
//
// Lines without the [blackdetect prefix are ignored; a prefixed line
// missing any of the three fields is a contract violation.
func parseBlackdetect(stderr string) ([]types.BlackPeriod, error) {
	var out []types.BlackPeriod
	for _, line := range strings.Split(stderr, "\n") {
		if !strings.HasPrefix(line, "[blackdetect") {
			continue
		}
		start, okS := matchFloat(blackStartRe, line)
		end, okE := matchFloat(blackEndRe, line)
		duration, okD := matchFloat(blackDurationRe, line)
		if !okS || !okE || !okD {
			return nil, fmt.Errorf("%w: %q", ErrBadDetectLine, line)
		}
		out = append(out, types.BlackPeriod{Start: start, End: end, Duration: duration})
	}
	return out, nil
}

func matchFloat(re *regexp.Regexp, line string) (float64, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
