package gates

import (
	"time"

	"github.com/EmundoT/gate-check/internal/projdetect"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// Gate keys for the Python toolchain.
var (
	KeyBlack  = types.NewGateKey("format", "black")
	KeyRuff   = types.NewGateKey("lint", "ruff")
	KeyMypy   = types.NewGateKey("types", "mypy")
	KeyPytest = types.NewGateKey("test", "pytest")
)

// pytest exit code 5 means no tests were collected.
const pytestNoTestsCollected = 5

// newBlackGate checks formatting with `black --check`.
func newBlackGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyBlack,
		toolchain: projdetect.ToolchainPython,
		tool:      "black",
		timeout:   time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"black", "--check", "--quiet", "."} },
		fixArgv:   func(types.GateConfig) []string { return []string{"black", "--quiet", "."} },
		interpret: passFail("run 'black .' or 'gate-check run format:black --fix'"),
	}
}

// newRuffGate wraps `ruff check`, with `--fix` as its remediation.
func newRuffGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyRuff,
		toolchain: projdetect.ToolchainPython,
		tool:      "ruff",
		timeout:   time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"ruff", "check", "."} },
		fixArgv:   func(types.GateConfig) []string { return []string{"ruff", "check", "--fix", "."} },
		interpret: passFail("run 'ruff check --fix .'"),
	}
}

// newMypyGate wraps mypy type checking.
func newMypyGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyMypy,
		toolchain: projdetect.ToolchainPython,
		tool:      "mypy",
		timeout:   3 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"mypy", "."} },
		interpret: passFail("fix the reported type errors"),
	}
}

// newPytestGate wraps pytest. A project with no collected tests is
// Skipped rather than Failed.
func newPytestGate(runner *toolexec.Runner, cfg types.GateConfig) *execGate {
	return &execGate{
		key:       KeyPytest,
		toolchain: projdetect.ToolchainPython,
		tool:      "pytest",
		timeout:   5 * time.Minute,
		runner:    runner,
		cfg:       cfg,
		argv:      func(types.GateConfig) []string { return []string{"pytest", "-q"} },
		interpret: func(outcome types.ProcessOutcome) types.GateResult {
			if outcome.Success() {
				return types.GateResult{Status: types.StatusPassed}
			}
			if outcome.ExitCode == pytestNoTestsCollected {
				return types.GateResult{
					Status: types.StatusSkipped,
					Output: "no tests collected",
				}
			}
			return types.GateResult{
				Status:        types.StatusFailed,
				Output:        combinedOutput(outcome),
				FixSuggestion: "fix the failing tests",
			}
		},
	}
}
