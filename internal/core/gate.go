package core

import (
	"context"

	"github.com/EmundoT/gate-check/internal/types"
)

// Gate is the unit of work the executor schedules. Concrete gates wrap
// external tools and live outside the core; the executor never inspects
// a gate beyond this contract.
//
// A gate instance is bound to one configuration fragment and used by
// exactly one worker for exactly one run.
type Gate interface {
	// Key returns the unique category:name identifier.
	Key() types.GateKey

	// DependsOn lists gates that must reach a terminal state before
	// this one starts.
	DependsOn() []types.GateKey

	// IsApplicable reports whether the gate should run against the
	// project root at all (distinct from being disabled by config).
	IsApplicable(root string) bool

	// SkipReason explains a false IsApplicable for display.
	SkipReason(root string) string

	// CanAutoFix reports whether the gate supports automatic
	// remediation before its validating run.
	CanAutoFix() bool

	// AutoFix performs best-effort remediation. Errors are logged and
	// swallowed by the executor; they never prevent the validating run.
	AutoFix(ctx context.Context, root string) (bool, error)

	// Run executes the validation and returns its result. The executor
	// converts panics into Error-status results.
	Run(ctx context.Context, root string) types.GateResult
}

// GateFactory produces a configured gate instance from its configuration
// fragment. Instances are created per run and discarded after.
type GateFactory func(cfg types.GateConfig) Gate

// GateDefinition is the registration record for one gate. Created once
// at registry population time and never mutated.
type GateDefinition struct {
	Key         types.GateKey
	Factory     GateFactory
	DependsOn   []types.GateKey
	SupportsFix bool
}

// Callbacks carries optional progress hooks from the caller (CLI or
// display layer). All fields may be nil; the executor functions with a
// zero value.
type Callbacks struct {
	OnCheckStart         func(key types.GateKey, category string)
	OnCheckComplete      func(result types.GateResult)
	OnCheckDisabled      func(key types.GateKey)
	OnCheckNotApplicable func(key types.GateKey)
	OnTotalDetermined    func(total int)
	OnPendingChecks      func(pending []types.PendingCheck)
	OnUnknownName        func(name string)
}

func (c Callbacks) checkStart(key types.GateKey, category string) {
	if c.OnCheckStart != nil {
		c.OnCheckStart(key, category)
	}
}

func (c Callbacks) checkComplete(result types.GateResult) {
	if c.OnCheckComplete != nil {
		c.OnCheckComplete(result)
	}
}

func (c Callbacks) checkDisabled(key types.GateKey) {
	if c.OnCheckDisabled != nil {
		c.OnCheckDisabled(key)
	}
}

func (c Callbacks) checkNotApplicable(key types.GateKey) {
	if c.OnCheckNotApplicable != nil {
		c.OnCheckNotApplicable(key)
	}
}

func (c Callbacks) totalDetermined(total int) {
	if c.OnTotalDetermined != nil {
		c.OnTotalDetermined(total)
	}
}

func (c Callbacks) pendingChecks(pending []types.PendingCheck) {
	if c.OnPendingChecks != nil {
		c.OnPendingChecks(pending)
	}
}

func (c Callbacks) unknownName(name string) {
	if c.OnUnknownName != nil {
		c.OnUnknownName(name)
	}
}
