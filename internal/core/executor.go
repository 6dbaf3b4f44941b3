package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/EmundoT/gate-check/internal/types"
)

// DefaultWorkers bounds simultaneously-running gates when neither the
// config nor the run options say otherwise.
const DefaultWorkers = 4

// Executor expands a requested set of gate keys and aliases, filters it
// by configuration and applicability, and drives dependency-aware
// concurrent execution with optional fail-fast.
//
// The orchestration loop runs on the calling goroutine and blocks only
// on first-completion waits; gate work runs on a bounded pool.
type Executor struct {
	registry *Registry
	logger   *zap.Logger
}

// NewExecutor creates an executor over an explicit registry. logger may
// be nil.
func NewExecutor(registry *Registry, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{registry: registry, logger: logger}
}

// gateEntry is one member of the working set.
type gateEntry struct {
	key  types.GateKey
	gate Gate
	deps []types.GateKey // restricted to the working set in buildGraph
}

// Execute runs the requested gates against the project root and returns
// the aggregated summary. Gate-level problems never surface as an error
// from Execute: failures, timeouts, missing tools, and panics all become
// results. An empty working set yields an empty summary.
func (e *Executor) Execute(ctx context.Context, requested []string, cfg *types.Config, root string, opts types.RunOptions, cb Callbacks) *types.ExecutionSummary {
	start := time.Now()
	summary := &types.ExecutionSummary{RunID: uuid.New().String()}

	order, entries := e.expand(requested, cfg, cb)
	order, entries = e.filterDisabled(order, entries, cfg, cb)

	results := make(map[types.GateKey]types.GateResult, len(order))
	scheduled := e.filterApplicability(order, entries, root, results, cb)

	cb.totalDetermined(len(order))
	if len(scheduled) > 0 {
		pending := make([]types.PendingCheck, 0, len(scheduled))
		for _, key := range scheduled {
			pending = append(pending, types.PendingCheck{Key: key, Category: key.Category()})
		}
		cb.pendingChecks(pending)
	}

	e.buildGraph(scheduled, entries)
	e.runLoop(ctx, scheduled, entries, root, opts, results, cb)

	for _, key := range order {
		if result, ok := results[key]; ok {
			summary.Results = append(summary.Results, result)
		}
	}
	summary.Duration = time.Since(start)
	return summary
}

// expand resolves names and aliases through the registry and pulls in
// missing declared dependencies (auto-inclusion). Returns the working
// set in original expansion order.
func (e *Executor) expand(requested []string, cfg *types.Config, cb Callbacks) ([]types.GateKey, map[types.GateKey]*gateEntry) {
	keys := e.registry.Expand(requested, cb)

	entries := make(map[types.GateKey]*gateEntry, len(keys))
	var order []types.GateKey

	var include func(key types.GateKey, implicit bool)
	include = func(key types.GateKey, implicit bool) {
		if _, ok := entries[key]; ok {
			return
		}
		gate := e.registry.Instantiate(key, cfg)
		if gate == nil {
			return
		}
		if implicit {
			e.logger.Info("auto-including dependency", zap.String("key", key.String()))
		}
		entries[key] = &gateEntry{key: key, gate: gate, deps: gate.DependsOn()}
		order = append(order, key)
		for _, dep := range gate.DependsOn() {
			include(dep, true)
		}
	}

	for _, key := range keys {
		include(key, false)
	}
	return order, entries
}

// filterDisabled removes gates disabled by configuration and, to a fixed
// point, gates whose dependency was excluded. Excluded gates produce no
// result; the disabled callback is the only signal.
func (e *Executor) filterDisabled(order []types.GateKey, entries map[types.GateKey]*gateEntry, cfg *types.Config, cb Callbacks) ([]types.GateKey, map[types.GateKey]*gateEntry) {
	excluded := make(map[types.GateKey]bool)
	for _, key := range order {
		if cfg.GateDisabled(key) {
			excluded[key] = true
		}
	}

	// Propagate through dependents until a pass makes no progress.
	for changed := true; changed; {
		changed = false
		for _, key := range order {
			if excluded[key] {
				continue
			}
			for _, dep := range entries[key].deps {
				if excluded[dep] {
					excluded[key] = true
					changed = true
					break
				}
			}
		}
	}

	if len(excluded) == 0 {
		return order, entries
	}

	kept := make([]types.GateKey, 0, len(order)-len(excluded))
	for _, key := range order {
		if excluded[key] {
			e.logger.Debug("gate disabled by configuration", zap.String("key", key.String()))
			cb.checkDisabled(key)
			delete(entries, key)
			continue
		}
		kept = append(kept, key)
	}
	return kept, entries
}

// filterApplicability short-circuits inapplicable gates to NotApplicable
// results and returns the keys that remain schedulable.
func (e *Executor) filterApplicability(order []types.GateKey, entries map[types.GateKey]*gateEntry, root string, results map[types.GateKey]types.GateResult, cb Callbacks) []types.GateKey {
	var scheduled []types.GateKey
	for _, key := range order {
		entry := entries[key]
		if entry.gate.IsApplicable(root) {
			scheduled = append(scheduled, key)
			continue
		}
		result := types.GateResult{
			Key:    key,
			Status: types.StatusNotApplicable,
			Output: entry.gate.SkipReason(root),
		}
		results[key] = result
		cb.checkNotApplicable(key)
		cb.checkComplete(result)
	}
	return scheduled
}

// buildGraph restricts each entry's dependency set to dependencies
// present in the scheduling set.
func (e *Executor) buildGraph(scheduled []types.GateKey, entries map[types.GateKey]*gateEntry) {
	inSet := make(map[types.GateKey]bool, len(scheduled))
	for _, key := range scheduled {
		inSet[key] = true
	}
	for _, key := range scheduled {
		entry := entries[key]
		var deps []types.GateKey
		for _, dep := range entry.deps {
			if inSet[dep] {
				deps = append(deps, dep)
			}
		}
		entry.deps = deps
	}
}

// runLoop drives the concurrent execution state machine: compute the
// ready set, submit to the bounded pool, block on first completion, and
// repeat until pending and in-flight are both empty or fail-fast stops
// further progress.
//
// On fail-fast the loop stops submitting but still drains in-flight
// completions so their results are recorded; per-gate timeouts bound
// how long that drain can take.
func (e *Executor) runLoop(ctx context.Context, scheduled []types.GateKey, entries map[types.GateKey]*gateEntry, root string, opts types.RunOptions, results map[types.GateKey]types.GateResult, cb Callbacks) {
	workers := int64(opts.Workers)
	if workers <= 0 {
		workers = DefaultWorkers
	}
	sem := semaphore.NewWeighted(workers)
	completions := make(chan types.GateResult, len(scheduled))

	pending := make(map[types.GateKey]bool, len(scheduled))
	for _, key := range scheduled {
		pending[key] = true
	}
	inFlight := make(map[types.GateKey]bool)
	stop := false

	record := func(result types.GateResult) {
		results[result.Key] = result
		cb.checkComplete(result)
	}

	// submitReady resolves or submits every ready pending gate. Skip
	// resolutions can unblock dependents, so it loops to a fixed point.
	submitReady := func() {
		for progress := true; progress; {
			progress = false
			for _, key := range scheduled {
				if !pending[key] {
					continue
				}
				entry := entries[key]
				ready, blocker := depState(entry.deps, results)
				if !ready {
					continue
				}
				if blocker != "" {
					delete(pending, key)
					record(types.GateResult{
						Key:    key,
						Status: types.StatusSkipped,
						Output: blocker,
					})
					progress = true
					continue
				}
				if !sem.TryAcquire(1) {
					// Pool is full; retry after the next completion.
					continue
				}
				delete(pending, key)
				inFlight[key] = true
				cb.checkStart(key, key.Category())
				go func(entry *gateEntry) {
					defer sem.Release(1)
					completions <- e.runGate(ctx, entry, root, opts)
				}(entry)
				progress = true
			}
		}
	}

	for {
		if !stop {
			submitReady()
		}
		if len(inFlight) == 0 {
			break
		}
		result := <-completions // first-completion wait
		delete(inFlight, result.Key)
		record(result)
		if opts.FailFast && result.Status.IsFailure() {
			if !stop {
				e.logger.Info("fail-fast: stopping after failure",
					zap.String("key", result.Key.String()))
			}
			stop = true
		}
	}

	// Resolve whatever never started: fail-fast leftovers, or gates
	// whose dependencies form a cycle.
	reason := "skipped: dependency cycle detected"
	if stop {
		reason = "skipped: fail-fast after earlier failure"
	}
	for _, key := range scheduled {
		if pending[key] {
			delete(pending, key)
			record(types.GateResult{
				Key:    key,
				Status: types.StatusSkipped,
				Output: reason,
			})
		}
	}
}

// depState reports whether every dependency is terminal and, if so, a
// skip reason when at least one did not succeed.
func depState(deps []types.GateKey, results map[types.GateKey]types.GateResult) (ready bool, blocker string) {
	for _, dep := range deps {
		result, terminal := results[dep]
		if !terminal {
			return false, ""
		}
		switch {
		case result.Status.IsFailure():
			return true, fmt.Sprintf("skipped: dependency %s failed", dep)
		case result.Status == types.StatusSkipped || result.Status == types.StatusNotApplicable:
			return true, fmt.Sprintf("skipped: dependency %s did not run", dep)
		}
	}
	return true, ""
}

// runGate performs the optional auto-fix and the validating run for one
// gate, converting panics into Error-status results.
func (e *Executor) runGate(ctx context.Context, entry *gateEntry, root string, opts types.RunOptions) (result types.GateResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("gate panicked",
				zap.String("key", entry.key.String()),
				zap.Any("panic", r))
			result = types.GateResult{
				Key:          entry.key,
				Status:       types.StatusError,
				Duration:     time.Since(start),
				ErrorMessage: fmt.Sprintf("gate panicked: %v", r),
			}
		}
	}()

	if opts.AutoFix && entry.gate.CanAutoFix() {
		// A failed fix attempt must not prevent the validating run.
		if _, err := entry.gate.AutoFix(ctx, root); err != nil {
			e.logger.Warn("auto-fix failed",
				zap.String("key", entry.key.String()),
				zap.Error(err))
		}
	}

	result = entry.gate.Run(ctx, root)
	result.Key = entry.key
	if result.Duration == 0 {
		result.Duration = time.Since(start)
	}
	return result
}
