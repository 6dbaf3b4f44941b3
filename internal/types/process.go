package types

import "time"

// CommandSpec describes one external tool invocation. The first Argv
// element is the executable name or path; the rest are passed verbatim.
// Value type, created fresh per invocation.
type CommandSpec struct {
	Argv    []string
	Dir     string
	Timeout time.Duration     // 0 means the runner default
	Env     map[string]string // overlay on the inherited environment
}

// Sentinel exit codes reported on ProcessOutcome instead of raising
// low-level OS errors, so callers can treat "tool missing" and "timed
// out" as normal outcomes.
const (
	// ExitNotFound is reported when the executable is not on PATH,
	// matching shell convention.
	ExitNotFound = 127

	// ExitTimedOut is reported when the process was killed by its
	// timeout.
	ExitTimedOut = -1
)

// ProcessOutcome is the structured result of one external invocation.
type ProcessOutcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Success is true iff the process exited zero and did not time out.
func (o ProcessOutcome) Success() bool {
	return o.ExitCode == 0 && !o.TimedOut
}

// NotFound reports whether the outcome represents a missing executable.
func (o ProcessOutcome) NotFound() bool {
	return o.ExitCode == ExitNotFound && !o.TimedOut
}
