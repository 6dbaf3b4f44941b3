package core

import (
	"sort"

	"github.com/EmundoT/gate-check/internal/types"
)

// GateStatus is one row of the `status` verb: the CLI-side view that
// re-derives enabled/disabled state from configuration against the full
// registry. The core execution API never builds results for disabled
// gates; this view exists purely for display.
type GateStatus struct {
	Key        types.GateKey `json:"key"`
	Category   string        `json:"category"`
	Enabled    bool          `json:"enabled"`
	Applicable bool          `json:"applicable"`
	SkipReason string        `json:"skip_reason,omitempty"`
	AutoFix    bool          `json:"auto_fix"`
	DependsOn  []string      `json:"depends_on,omitempty"`
}

// StatusService derives per-gate status from registry plus config.
type StatusService struct {
	registry *Registry
}

// NewStatusService creates a StatusService over a registry.
func NewStatusService(registry *Registry) *StatusService {
	return &StatusService{registry: registry}
}

// Report builds status rows for every registered gate, sorted by key.
func (s *StatusService) Report(cfg *types.Config, root string) []GateStatus {
	keys := s.registry.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	statuses := make([]GateStatus, 0, len(keys))
	for _, key := range keys {
		def, ok := s.registry.Definition(key)
		if !ok {
			continue
		}

		row := GateStatus{
			Key:      key,
			Category: key.Category(),
			Enabled:  !cfg.GateDisabled(key),
			AutoFix:  def.SupportsFix,
		}
		for _, dep := range def.DependsOn {
			row.DependsOn = append(row.DependsOn, dep.String())
		}

		gate := s.registry.Instantiate(key, cfg)
		if gate != nil {
			row.Applicable = gate.IsApplicable(root)
			if !row.Applicable {
				row.SkipReason = gate.SkipReason(root)
			}
		}
		statuses = append(statuses, row)
	}
	return statuses
}
