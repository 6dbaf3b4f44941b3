// Package gates ships the reference gate implementations bundled with
// gate-check. Every gate wraps one external tool and reaches the process
// boundary exclusively through toolexec; the executor sees gates only
// through the core.Gate contract.
//
// Gates are registered by an explicit RegisterAll call, never discovered
// by reflection.
package gates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/projdetect"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// execGate is the shared shape of all bundled gates: one validating
// command, an optional fix command, toolchain-based applicability, and
// an interpretation step mapping the process outcome onto a GateResult.
type execGate struct {
	key       types.GateKey
	deps      []types.GateKey
	toolchain projdetect.Toolchain
	tool      string // bare tool name, for skip reasons and fix hints
	timeout   time.Duration

	runner *toolexec.Runner
	cfg    types.GateConfig

	argv      func(cfg types.GateConfig) []string
	fixArgv   func(cfg types.GateConfig) []string // nil means no auto-fix
	interpret func(outcome types.ProcessOutcome) types.GateResult
}

var _ core.Gate = (*execGate)(nil)

func (g *execGate) Key() types.GateKey          { return g.key }
func (g *execGate) DependsOn() []types.GateKey  { return g.deps }
func (g *execGate) CanAutoFix() bool            { return g.fixArgv != nil }

// IsApplicable matches the gate's toolchain against marker files at the
// project root. Whether the tool itself is installed is a run-time
// concern, reported by Run as a Skipped result.
func (g *execGate) IsApplicable(root string) bool {
	return projdetect.Detect(root).Has(g.toolchain)
}

func (g *execGate) SkipReason(root string) string {
	return fmt.Sprintf("no %s project detected at %s", g.toolchain, root)
}

// AutoFix runs the fix command. The executor swallows errors; the
// validating run still happens afterwards.
func (g *execGate) AutoFix(ctx context.Context, root string) (bool, error) {
	if g.fixArgv == nil {
		return false, nil
	}
	outcome, err := g.runner.Run(ctx, types.CommandSpec{
		Argv:    g.fixArgv(g.cfg),
		Dir:     root,
		Timeout: g.timeout,
	})
	if err != nil {
		return false, err
	}
	if !outcome.Success() {
		return false, fmt.Errorf("%s fix exited %d: %s", g.tool, outcome.ExitCode, firstLine(outcome.Stderr))
	}
	return true, nil
}

// Run executes the validating command and interprets its outcome.
// Security rejections become Error results; a missing tool becomes a
// Skipped result carrying an install hint.
func (g *execGate) Run(ctx context.Context, root string) types.GateResult {
	outcome, err := g.runner.Run(ctx, types.CommandSpec{
		Argv:    g.argv(g.cfg),
		Dir:     root,
		Timeout: g.timeout,
	})
	if err != nil {
		return types.GateResult{
			Key:          g.key,
			Status:       types.StatusError,
			ErrorMessage: err.Error(),
		}
	}

	if outcome.NotFound() {
		return types.GateResult{
			Key:           g.key,
			Status:        types.StatusSkipped,
			Duration:      outcome.Duration,
			Output:        fmt.Sprintf("%s is not installed", g.tool),
			FixSuggestion: "install " + g.tool,
		}
	}

	if outcome.TimedOut {
		return types.GateResult{
			Key:          g.key,
			Status:       types.StatusError,
			Duration:     outcome.Duration,
			ErrorMessage: fmt.Sprintf("%s timed out", g.tool),
			Output:       combinedOutput(outcome),
		}
	}

	result := g.interpret(outcome)
	result.Key = g.key
	result.Duration = outcome.Duration
	return result
}

// passFail is the default interpretation: exit zero passes, anything
// else fails with the tool output attached.
func passFail(fixHint string) func(types.ProcessOutcome) types.GateResult {
	return func(outcome types.ProcessOutcome) types.GateResult {
		if outcome.Success() {
			return types.GateResult{Status: types.StatusPassed}
		}
		return types.GateResult{
			Status:        types.StatusFailed,
			Output:        combinedOutput(outcome),
			FixSuggestion: fixHint,
		}
	}
}

func combinedOutput(outcome types.ProcessOutcome) string {
	out := strings.TrimSpace(outcome.Stdout)
	errOut := strings.TrimSpace(outcome.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// option reads a gate option with a default.
func option(cfg types.GateConfig, name, fallback string) string {
	if cfg.Options != nil {
		if v, ok := cfg.Options[name]; ok && v != "" {
			return v
		}
	}
	return fallback
}
