package gates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/EmundoT/gate-check/internal/types"
)

func TestGitleaksGate_IsApplicable(t *testing.T) {
	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	gate := newGitleaksGate(nil, types.GateConfig{})
	if !gate.IsApplicable(repo) {
		t.Error("gitleaks should apply inside a git repository")
	}
	if gate.IsApplicable(t.TempDir()) {
		t.Error("gitleaks should not apply outside a git repository")
	}
	if gate.SkipReason(t.TempDir()) != "not a git repository" {
		t.Error("unexpected skip reason")
	}
}

func TestGitleaksGate_Interpret(t *testing.T) {
	gate := newGitleaksGate(nil, types.GateConfig{})

	clean := gate.interpret(types.ProcessOutcome{ExitCode: 0})
	if clean.Status != types.StatusPassed {
		t.Errorf("clean scan: %s", clean.Status)
	}

	leak := gate.interpret(types.ProcessOutcome{ExitCode: 1, Stdout: "Finding: REDACTED"})
	if leak.Status != types.StatusFailed {
		t.Errorf("leak found: %s", leak.Status)
	}
	if leak.FixSuggestion == "" {
		t.Error("a leak should carry remediation guidance")
	}
}
