package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/types"
)

func TestResultLine(t *testing.T) {
	tests := []struct {
		name   string
		result types.GateResult
		want   string
	}{
		{
			"passed with duration",
			types.GateResult{Key: "format:gofmt", Status: types.StatusPassed, Duration: 1500 * time.Millisecond},
			"✔ format:gofmt passed (1.5s)",
		},
		{
			"failed",
			types.GateResult{Key: "lint:govet", Status: types.StatusFailed},
			"✖ lint:govet failed",
		},
		{
			"skipped",
			types.GateResult{Key: "test:pytest", Status: types.StatusSkipped},
			"- test:pytest skipped",
		},
		{
			"warned",
			types.GateResult{Key: "duplication:dupl", Status: types.StatusWarned},
			"! duplication:dupl warned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResultLine(tt.result); got != tt.want {
				t.Errorf("ResultLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

// recordingTracker captures tracker calls for callback-wiring tests.
type recordingTracker struct {
	total      int
	increments []string
}

func (r *recordingTracker) Increment(msg string) { r.increments = append(r.increments, msg) }
func (r *recordingTracker) SetTotal(total int)   { r.total = total }
func (r *recordingTracker) Complete()            {}
func (r *recordingTracker) Fail(_ error)         {}

func TestRunCallbacks_WiresTracker(t *testing.T) {
	tracker := &recordingTracker{}
	cb := RunCallbacks(tracker)

	cb.OnTotalDetermined(3)
	cb.OnCheckComplete(types.GateResult{Key: "format:gofmt", Status: types.StatusPassed})
	cb.OnCheckComplete(types.GateResult{Key: "lint:govet", Status: types.StatusFailed})

	if tracker.total != 3 {
		t.Errorf("total = %d, want 3", tracker.total)
	}
	if len(tracker.increments) != 2 {
		t.Fatalf("increments = %d, want 2", len(tracker.increments))
	}
	if !strings.Contains(tracker.increments[1], "lint:govet") {
		t.Errorf("increment should carry the result line: %q", tracker.increments[1])
	}
}

func TestNonInteractiveCallback_Confirmation(t *testing.T) {
	yes := NewNonInteractiveTUICallback(core.NonInteractiveFlags{Yes: true, Mode: core.OutputQuiet})
	if !yes.AskConfirmation("Overwrite", "replace gates.yml?") {
		t.Error("--yes should auto-approve")
	}
	if !yes.IsAutoApprove() {
		t.Error("IsAutoApprove should reflect the flag")
	}

	no := NewNonInteractiveTUICallback(core.NonInteractiveFlags{Mode: core.OutputQuiet})
	if no.AskConfirmation("Overwrite", "replace gates.yml?") {
		t.Error("without --yes a prompt must refuse for safety")
	}
}

func TestNonInteractiveCallback_Mode(t *testing.T) {
	cb := NewNonInteractiveTUICallback(core.NonInteractiveFlags{Mode: core.OutputJSON})
	if cb.GetOutputMode() != core.OutputJSON {
		t.Errorf("GetOutputMode() = %v", cb.GetOutputMode())
	}
	if cb.StyleTitle("Plain") != "Plain" {
		t.Error("non-interactive output carries no styling")
	}
}
