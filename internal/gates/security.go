package gates

import (
	"time"

	"github.com/EmundoT/gate-check/internal/projdetect"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// KeyGitleaks identifies the secret-scanning gate.
var KeyGitleaks = types.NewGateKey("security", "gitleaks")

// gitleaksGate wraps the gitleaks binary. Unlike toolchain gates it is
// applicable to any git repository, so it overrides the marker-file
// applicability of execGate.
type gitleaksGate struct {
	execGate
}

func newGitleaksGate(runner *toolexec.Runner, cfg types.GateConfig) *gitleaksGate {
	g := &gitleaksGate{execGate{
		key:     KeyGitleaks,
		tool:    "gitleaks",
		timeout: 3 * time.Minute,
		runner:  runner,
		cfg:     cfg,
		argv: func(types.GateConfig) []string {
			return []string{"gitleaks", "detect", "--no-banner", "--redact"}
		},
		interpret: func(outcome types.ProcessOutcome) types.GateResult {
			if outcome.Success() {
				return types.GateResult{Status: types.StatusPassed}
			}
			return types.GateResult{
				Status:        types.StatusFailed,
				Output:        combinedOutput(outcome),
				FixSuggestion: "rotate the leaked credential and rewrite the offending commits",
			}
		},
	}}
	return g
}

// IsApplicable requires a git work tree; gitleaks scans git history.
func (g *gitleaksGate) IsApplicable(root string) bool {
	return projdetect.IsGitRepository(root)
}

func (g *gitleaksGate) SkipReason(root string) string {
	return "not a git repository"
}
