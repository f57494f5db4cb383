package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/forPelevin/blacksplit/internal/ports"
)

// durationRe matches the "Duration: 00:01:30.05" banner ffmpeg prints to
// stderr for each input. -hide_banner does not suppress it.
var durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+(?:\.\d+)?)`)

// Runner executes ffmpeg with an injected "-progress - -nostats" pair so
// the machine-readable key=value progress stream arrives on stdout while
// the usual diagnostics stay on stderr.
type Runner struct {
	log *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

func (r *Runner) Run(ctx context.Context, name string, args []string, onProgress ports.ProgressFunc) (ports.RunResult, error) {
	full := append([]string{"-progress", "-", "-nostats"}, args...)
	cmd := exec.CommandContext(ctx, name, full...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ports.RunResult{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return ports.RunResult{}, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return ports.RunResult{}, fmt.Errorf("start %s: %w", name, err)
	}

	var (
		mu       sync.Mutex
		total    float64 // seconds, 0 until the Duration banner is seen
		errLines strings.Builder
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(stderr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			mu.Lock()
			errLines.WriteString(line)
			errLines.WriteByte('\n')
			if total == 0 {
				if m := durationRe.FindStringSubmatch(line); m != nil {
					h, _ := strconv.ParseFloat(m[1], 64)
					min, _ := strconv.ParseFloat(m[2], 64)
					s, _ := strconv.ParseFloat(m[3], 64)
					total = h*3600 + min*60 + s
				}
			}
			mu.Unlock()
		}
	}()

	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || onProgress == nil {
			continue
		}
		switch key {
		// out_time_ms is, despite the name, microseconds too.
		case "out_time_us", "out_time_ms":
			us, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			mu.Lock()
			d := total
			mu.Unlock()
			if d > 0 {
				onProgress(clampPercent(us / 1e6 / d * 100))
			}
		case "progress":
			if value == "end" {
				onProgress(100)
			}
		}
	}

	wg.Wait()
	waitErr := cmd.Wait()

	mu.Lock()
	captured := errLines.String()
	mu.Unlock()

	if waitErr != nil {
		return ports.RunResult{}, fmt.Errorf("%s: %w\n%s", name, waitErr, tail(captured, 20))
	}
	return ports.RunResult{Stderr: captured}, nil
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// tail returns the last n lines of s, enough context for an error message
// without dumping a whole transcode log.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
