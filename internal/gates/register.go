package gates

import (
	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// RegisterAll registers every bundled gate and the built-in profiles on
// the given registry. Each gate's factory captures the shared process
// runner; instances are created per run by the registry.
func RegisterAll(reg *core.Registry, runner *toolexec.Runner) {
	defs := []core.GateDefinition{
		{
			Key:         KeyGofmt,
			SupportsFix: true,
			Factory:     func(cfg types.GateConfig) core.Gate { return newGofmtGate(runner, cfg) },
		},
		{
			Key:     KeyGovet,
			Factory: func(cfg types.GateConfig) core.Gate { return newGovetGate(runner, cfg) },
		},
		{
			Key:     KeyGotest,
			Factory: func(cfg types.GateConfig) core.Gate { return newGotestGate(runner, cfg) },
		},
		{
			Key:       KeyGocover,
			DependsOn: []types.GateKey{KeyGotest},
			Factory:   func(cfg types.GateConfig) core.Gate { return newGocoverGate(runner, cfg) },
		},
		{
			Key:     KeyDupl,
			Factory: func(cfg types.GateConfig) core.Gate { return newDuplGate(runner, cfg) },
		},
		{
			Key:         KeyBlack,
			SupportsFix: true,
			Factory:     func(cfg types.GateConfig) core.Gate { return newBlackGate(runner, cfg) },
		},
		{
			Key:         KeyRuff,
			SupportsFix: true,
			Factory:     func(cfg types.GateConfig) core.Gate { return newRuffGate(runner, cfg) },
		},
		{
			Key:     KeyMypy,
			Factory: func(cfg types.GateConfig) core.Gate { return newMypyGate(runner, cfg) },
		},
		{
			Key:     KeyPytest,
			Factory: func(cfg types.GateConfig) core.Gate { return newPytestGate(runner, cfg) },
		},
		{
			Key:     KeyGitleaks,
			Factory: func(cfg types.GateConfig) core.Gate { return newGitleaksGate(runner, cfg) },
		},
	}
	for _, def := range defs {
		reg.Register(def)
	}

	// Profiles. "pr" nests "commit"; the registry flattens one level of
	// alias nesting at expansion time.
	reg.RegisterAlias(core.AliasCommit, []string{
		KeyGofmt.String(),
		KeyGovet.String(),
		KeyBlack.String(),
		KeyRuff.String(),
	})
	reg.RegisterAlias(core.AliasPR, []string{
		core.AliasCommit,
		KeyMypy.String(),
		KeyGotest.String(),
		KeyPytest.String(),
		KeyGitleaks.String(),
	})
	reg.RegisterAlias(core.AliasFull, []string{
		core.AliasCommit,
		KeyMypy.String(),
		KeyGotest.String(),
		KeyPytest.String(),
		KeyGitleaks.String(),
		KeyGocover.String(),
		KeyDupl.String(),
	})
}

// DefaultRegistry builds a registry with every bundled gate registered,
// for top-level wiring. Tests construct isolated registries instead.
func DefaultRegistry(runner *toolexec.Runner) *core.Registry {
	reg := core.NewRegistry(nil)
	RegisterAll(reg, runner)
	return reg
}
