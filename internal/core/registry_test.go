package core

import (
	"context"
	"reflect"
	"testing"

	"github.com/EmundoT/gate-check/internal/types"
)

// staticGate is a minimal Gate for registry and executor tests.
type staticGate struct {
	key        types.GateKey
	deps       []types.GateKey
	applicable bool
	skipReason string
	canFix     bool
	fixFunc    func(ctx context.Context, root string) (bool, error)
	runFunc    func(ctx context.Context, root string) types.GateResult
}

var _ Gate = (*staticGate)(nil)

func (g *staticGate) Key() types.GateKey         { return g.key }
func (g *staticGate) DependsOn() []types.GateKey { return g.deps }
func (g *staticGate) CanAutoFix() bool           { return g.canFix }

func (g *staticGate) IsApplicable(root string) bool {
	return g.applicable
}

func (g *staticGate) SkipReason(root string) string {
	if g.skipReason != "" {
		return g.skipReason
	}
	return "not applicable"
}

func (g *staticGate) AutoFix(ctx context.Context, root string) (bool, error) {
	if g.fixFunc != nil {
		return g.fixFunc(ctx, root)
	}
	return false, nil
}

func (g *staticGate) Run(ctx context.Context, root string) types.GateResult {
	if g.runFunc != nil {
		return g.runFunc(ctx, root)
	}
	return types.GateResult{Key: g.key, Status: types.StatusPassed}
}

// passingDef registers a trivially passing, always-applicable gate.
func passingDef(key types.GateKey, deps ...types.GateKey) GateDefinition {
	return GateDefinition{
		Key:       key,
		DependsOn: deps,
		Factory: func(cfg types.GateConfig) Gate {
			return &staticGate{key: key, deps: deps, applicable: true}
		},
	}
}

func TestRegistry_RegisterAndDefinition(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(passingDef("format:gofmt"))

	def, ok := reg.Definition("format:gofmt")
	if !ok {
		t.Fatal("expected definition to be registered")
	}
	if def.Key != "format:gofmt" {
		t.Errorf("unexpected key: %s", def.Key)
	}
	if _, ok := reg.Definition("format:unknown"); ok {
		t.Error("unregistered key should not resolve")
	}
}

func TestRegistry_ReRegistrationReplacesSilently(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(GateDefinition{Key: "lint:govet", SupportsFix: false, Factory: func(types.GateConfig) Gate { return nil }})
	reg.Register(GateDefinition{Key: "lint:govet", SupportsFix: true, Factory: func(types.GateConfig) Gate { return nil }})

	def, ok := reg.Definition("lint:govet")
	if !ok || !def.SupportsFix {
		t.Error("re-registration should replace the previous definition")
	}
	if len(reg.Keys()) != 1 {
		t.Errorf("expected exactly one key, got %d", len(reg.Keys()))
	}
}

func TestRegistry_ExpandDeduplicatesPreservingOrder(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(passingDef("format:gofmt"))
	reg.Register(passingDef("lint:govet"))
	reg.Register(passingDef("test:gotest"))
	reg.RegisterAlias("commit", []string{"format:gofmt", "lint:govet"})

	keys := reg.Expand([]string{"lint:govet", "commit", "test:gotest", "lint:govet"}, Callbacks{})
	want := []types.GateKey{"lint:govet", "format:gofmt", "test:gotest"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Expand() = %v, want %v", keys, want)
	}
}

func TestRegistry_ExpandUnknownNameDropsWithCallback(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(passingDef("format:gofmt"))

	var unknown []string
	cb := Callbacks{OnUnknownName: func(name string) { unknown = append(unknown, name) }}

	keys := reg.Expand([]string{"format:gofmt", "no:such", "bogus"}, cb)
	if len(keys) != 1 || keys[0] != "format:gofmt" {
		t.Errorf("unexpected keys: %v", keys)
	}
	if !reflect.DeepEqual(unknown, []string{"no:such", "bogus"}) {
		t.Errorf("unexpected unknown callback calls: %v", unknown)
	}
}

func TestRegistry_NestedAliasExpandsOneLevel(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(passingDef("format:gofmt"))
	reg.Register(passingDef("test:gotest"))
	reg.RegisterAlias("commit", []string{"format:gofmt"})
	reg.RegisterAlias("pr", []string{"commit", "test:gotest"})

	keys, ok := reg.AliasKeys("pr")
	if !ok {
		t.Fatal("expected pr alias to resolve")
	}
	want := []types.GateKey{"format:gofmt", "test:gotest"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("AliasKeys(pr) = %v, want %v", keys, want)
	}
}

func TestRegistry_AliasKeysUnknown(t *testing.T) {
	reg := NewRegistry(nil)
	if _, ok := reg.AliasKeys("missing"); ok {
		t.Error("unknown alias should not resolve")
	}
}

func TestRegistry_Instantiate(t *testing.T) {
	reg := NewRegistry(nil)
	var gotCfg types.GateConfig
	reg.Register(GateDefinition{
		Key: "coverage:gocover",
		Factory: func(cfg types.GateConfig) Gate {
			gotCfg = cfg
			return &staticGate{key: "coverage:gocover", applicable: true}
		},
	})

	cfg := &types.Config{
		Categories: map[string]types.CategoryConfig{
			"coverage": {
				Gates: map[string]types.GateConfig{
					"gocover": {Options: map[string]string{"min_percent": "90"}},
				},
			},
		},
	}

	gate := reg.Instantiate("coverage:gocover", cfg)
	if gate == nil {
		t.Fatal("expected a gate instance")
	}
	if gotCfg.Options["min_percent"] != "90" {
		t.Errorf("factory did not receive the config fragment: %+v", gotCfg)
	}

	if reg.Instantiate("no:such", cfg) != nil {
		t.Error("unregistered key should instantiate to nil")
	}
}
