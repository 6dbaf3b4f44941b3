package types

import "testing"

func TestProcessOutcome_Success(t *testing.T) {
	tests := []struct {
		name    string
		outcome ProcessOutcome
		success bool
	}{
		{"clean exit", ProcessOutcome{ExitCode: 0}, true},
		{"non-zero exit", ProcessOutcome{ExitCode: 1}, false},
		{"timed out", ProcessOutcome{ExitCode: 0, TimedOut: true}, false},
		{"not found", ProcessOutcome{ExitCode: ExitNotFound}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Success(); got != tt.success {
				t.Errorf("Success() = %v, want %v", got, tt.success)
			}
		})
	}
}

func TestProcessOutcome_NotFound(t *testing.T) {
	if !(ProcessOutcome{ExitCode: ExitNotFound}).NotFound() {
		t.Error("sentinel 127 should report NotFound")
	}
	if (ProcessOutcome{ExitCode: 1}).NotFound() {
		t.Error("ordinary failure is not NotFound")
	}
}
