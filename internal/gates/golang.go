package gates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/EmundoT/gate-check/internal/projdetect"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// Gate keys for the Go toolchain.
var (
	KeyGofmt   = types.NewGateKey("format", "gofmt")
	KeyGovet   = types.NewGateKey("lint", "govet")
	KeyGotest  = types.NewGateKey("test", "gotest")
	KeyGocover = types.NewGateKey("coverage", "gocover")
	KeyDupl    = types.NewGateKey("duplication", "dupl")
)

// newGofmtGate checks formatting with `gofmt -l`. gofmt exits zero even
// when files need formatting, so the gate fails on non-empty output.
func newGofmtGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyGofmt,
		toolchain: projdetect.ToolchainGo,
		tool:      "gofmt",
		timeout:   time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"gofmt", "-l", "."} },
		fixArgv:   func(types.GateConfig) []string { return []string{"gofmt", "-w", "."} },
		interpret: func(outcome types.ProcessOutcome) types.GateResult {
			files := nonEmptyLines(outcome.Stdout)
			if outcome.Success() && len(files) == 0 {
				return types.GateResult{Status: types.StatusPassed}
			}
			return types.GateResult{
				Status:        types.StatusFailed,
				Output:        combinedOutput(outcome),
				FixSuggestion: "run 'gofmt -w .' or 'gate-check run format:gofmt --fix'",
				FilesChecked:  len(files),
			}
		},
	}
}

// newGovetGate wraps `go vet ./...`.
func newGovetGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyGovet,
		toolchain: projdetect.ToolchainGo,
		tool:      "go",
		timeout:   2 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"go", "vet", "./..."} },
		interpret: passFail("fix the reported vet diagnostics"),
	}
}

// newGotestGate wraps `go test ./...`.
func newGotestGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyGotest,
		toolchain: projdetect.ToolchainGo,
		tool:      "go",
		timeout:   5 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"go", "test", "./..."} },
		interpret: passFail("fix the failing tests"),
	}
}

// coverageLine matches per-package coverage in `go test -cover` output,
// e.g. "ok   example.com/pkg  0.01s  coverage: 83.3% of statements".
var coverageLine = regexp.MustCompile(`coverage:\s+(\d+(?:\.\d+)?)%`)

// newGocoverGate runs `go test -cover ./...` and enforces the
// min_percent option (default 0, i.e. report-only) against the lowest
// per-package coverage. Depends on test:gotest so broken tests surface
// there first.
func newGocoverGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyGocover,
		deps:      []types.GateKey{KeyGotest},
		toolchain: projdetect.ToolchainGo,
		tool:      "go",
		timeout:   5 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"go", "test", "-cover", "./..."} },
		interpret: func(outcome types.ProcessOutcome) types.GateResult {
			if !outcome.Success() {
				return types.GateResult{
					Status: types.StatusFailed,
					Output: combinedOutput(outcome),
				}
			}

			minPercent, _ := strconv.ParseFloat(option(cfg, "min_percent", "0"), 64)
			lowest := 100.0
			found := false
			for _, match := range coverageLine.FindAllStringSubmatch(outcome.Stdout, -1) {
				if pct, err := strconv.ParseFloat(match[1], 64); err == nil {
					found = true
					if pct < lowest {
						lowest = pct
					}
				}
			}

			if !found {
				return types.GateResult{
					Status: types.StatusWarned,
					Output: "no coverage data in test output",
				}
			}
			if lowest < minPercent {
				return types.GateResult{
					Status:        types.StatusFailed,
					Output:        fmt.Sprintf("lowest package coverage %.1f%% is below minimum %.1f%%", lowest, minPercent),
					FixSuggestion: "add tests for the least-covered packages",
				}
			}
			return types.GateResult{
				Status: types.StatusPassed,
				Output: fmt.Sprintf("lowest package coverage %.1f%%", lowest),
			}
		},
	}
}

// newDuplGate wraps dupl clone detection. The threshold option sets the
// minimum token count treated as a clone (dupl's -t flag).
func newDuplGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyDupl,
		toolchain: projdetect.ToolchainGo,
		tool:      "dupl",
		timeout:   2 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv: func(cfg types.GateConfig) []string {
			return []string{"dupl", "-t", option(cfg, "threshold", "75"), "./..."}
		},
		interpret: func(outcome types.ProcessOutcome) types.GateResult {
			// dupl exits zero even when clones are found; clones show
			// up as "found N clones" on stdout.
			if outcome.Success() && !strings.Contains(outcome.Stdout, "found") {
				return types.GateResult{Status: types.StatusPassed}
			}
			if !outcome.Success() {
				return types.GateResult{
					Status: types.StatusError,
					Output: combinedOutput(outcome),
				}
			}
			return types.GateResult{
				Status:        types.StatusWarned,
				Output:        combinedOutput(outcome),
				FixSuggestion: "extract the duplicated code into shared helpers",
			}
		},
	}
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
