// Package types defines the shared data model for gate-check: gate keys,
// results, execution summaries, and the configuration shape consumed from
// gates.yml.
package types

import (
	"fmt"
	"strings"
	"time"
)

// GateKey is the composite identifier for a gate: "category:name".
// It is unique within a registry and immutable once registered.
type GateKey string

// NewGateKey builds a GateKey from its category and name parts.
func NewGateKey(category, name string) GateKey {
	return GateKey(category + ":" + name)
}

// Category returns the category portion of the key ("format" in "format:gofmt").
func (k GateKey) Category() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k)[:i]
	}
	return string(k)
}

// Name returns the name portion of the key ("gofmt" in "format:gofmt").
func (k GateKey) Name() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k)[i+1:]
	}
	return ""
}

// Valid reports whether the key has both a category and a name.
func (k GateKey) Valid() bool {
	return k.Category() != "" && k.Name() != ""
}

func (k GateKey) String() string { return string(k) }

// Status is the terminal state of a single gate run.
type Status string

// Status values. Failed and Error count as failures for downstream
// gating; Skipped and NotApplicable do not.
const (
	StatusPassed        Status = "passed"
	StatusFailed        Status = "failed"
	StatusSkipped       Status = "skipped"
	StatusNotApplicable Status = "not_applicable"
	StatusWarned        Status = "warned"
	StatusError         Status = "error"
)

// IsFailure reports whether the status blocks dependents and flips
// AllPassed on the summary.
func (s Status) IsFailure() bool {
	return s == StatusFailed || s == StatusError
}

// GateResult is the immutable outcome of one gate run. Produced exactly
// once per gate per run.
type GateResult struct {
	Key           GateKey       `json:"key" yaml:"key"`
	Status        Status        `json:"status" yaml:"status"`
	Duration      time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Output        string        `json:"output,omitempty" yaml:"output,omitempty"`
	ErrorMessage  string        `json:"error,omitempty" yaml:"error,omitempty"`
	FixSuggestion string        `json:"fix_suggestion,omitempty" yaml:"fix_suggestion,omitempty"`
	FilesChecked  int           `json:"files_checked,omitempty" yaml:"files_checked,omitempty"`
}

// ExecutionSummary aggregates all gate results for one run. Results are
// listed in original requested/expanded order even though they complete
// out of order.
type ExecutionSummary struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Results  []GateResult  `json:"results" yaml:"results"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// AllPassed is true iff no result has a failure status. This is the sole
// boolean signal for exit-code purposes in the surrounding CLI.
func (s *ExecutionSummary) AllPassed() bool {
	for _, r := range s.Results {
		if r.Status.IsFailure() {
			return false
		}
	}
	return true
}

// Counts returns the number of results per status.
func (s *ExecutionSummary) Counts() map[Status]int {
	counts := make(map[Status]int, 6)
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

// GateConfig is the per-gate configuration fragment
// (config[category].gates[name]). Gate-specific fields ride along in
// Options.
type GateConfig struct {
	Enabled *bool             `yaml:"enabled,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
}

// IsEnabled defaults to enabled when the field is absent.
func (g GateConfig) IsEnabled() bool {
	return g.Enabled == nil || *g.Enabled
}

// CategoryConfig groups the gates of one category.
type CategoryConfig struct {
	Enabled *bool                 `yaml:"enabled,omitempty"`
	Gates   map[string]GateConfig `yaml:"gates,omitempty"`
}

// IsEnabled defaults to enabled when the field is absent.
func (c CategoryConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Config is the gates.yml shape. Absent or malformed sections default to
// "enabled"; the engine performs no schema validation beyond that.
type Config struct {
	Categories    map[string]CategoryConfig `yaml:"categories,omitempty"`
	DisabledGates []string                  `yaml:"disabled_gates,omitempty"`
	Workers       int                       `yaml:"workers,omitempty"`
	FailFast      bool                      `yaml:"fail_fast,omitempty"`
	DefaultAlias  string                    `yaml:"default_alias,omitempty"`
}

// GateConfigFor extracts the configuration fragment for a key, returning
// a zero value when the section is absent.
func (c *Config) GateConfigFor(key GateKey) GateConfig {
	if c == nil || c.Categories == nil {
		return GateConfig{}
	}
	cat, ok := c.Categories[key.Category()]
	if !ok || cat.Gates == nil {
		return GateConfig{}
	}
	return cat.Gates[key.Name()]
}

// GateDisabled reports whether the key is disabled by the flat
// disabled_gates list, by its category, or by its gate entry.
func (c *Config) GateDisabled(key GateKey) bool {
	if c == nil {
		return false
	}
	for _, k := range c.DisabledGates {
		if GateKey(k) == key {
			return true
		}
	}
	if c.Categories != nil {
		if cat, ok := c.Categories[key.Category()]; ok {
			if !cat.IsEnabled() {
				return true
			}
			if cat.Gates != nil {
				if gc, ok := cat.Gates[key.Name()]; ok && !gc.IsEnabled() {
					return true
				}
			}
		}
	}
	return false
}

// RunOptions carries caller choices into one Execute call.
type RunOptions struct {
	FailFast bool
	AutoFix  bool
	Workers  int // 0 means the executor default
}

// PendingCheck identifies one gate queued for execution, for display.
type PendingCheck struct {
	Key      GateKey
	Category string
}

// String renders "category:name (status)" for log lines.
func (r GateResult) String() string {
	return fmt.Sprintf("%s (%s)", r.Key, r.Status)
}
