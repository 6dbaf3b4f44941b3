package gates

import (
	"testing"

	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/types"
)

func TestRegisterAll_RegistersEveryGate(t *testing.T) {
	reg := core.NewRegistry(nil)
	RegisterAll(reg, nil)

	want := []types.GateKey{
		KeyGofmt, KeyGovet, KeyGotest, KeyGocover, KeyDupl,
		KeyBlack, KeyRuff, KeyMypy, KeyPytest, KeyGitleaks,
	}
	if len(reg.Keys()) != len(want) {
		t.Fatalf("registered %d gates, want %d", len(reg.Keys()), len(want))
	}
	for _, key := range want {
		if _, ok := reg.Definition(key); !ok {
			t.Errorf("gate %s not registered", key)
		}
	}
}

func TestRegisterAll_FixableGates(t *testing.T) {
	reg := core.NewRegistry(nil)
	RegisterAll(reg, nil)

	fixable := map[types.GateKey]bool{KeyGofmt: true, KeyBlack: true, KeyRuff: true}
	for _, key := range reg.Keys() {
		def, _ := reg.Definition(key)
		if def.SupportsFix != fixable[key] {
			t.Errorf("%s: SupportsFix = %v, want %v", key, def.SupportsFix, fixable[key])
		}
	}
}

func TestRegisterAll_GocoverDependsOnGotest(t *testing.T) {
	reg := core.NewRegistry(nil)
	RegisterAll(reg, nil)

	def, ok := reg.Definition(KeyGocover)
	if !ok {
		t.Fatal("gocover not registered")
	}
	if len(def.DependsOn) != 1 || def.DependsOn[0] != KeyGotest {
		t.Errorf("gocover DependsOn = %v", def.DependsOn)
	}
}

func TestRegisterAll_Profiles(t *testing.T) {
	reg := core.NewRegistry(nil)
	RegisterAll(reg, nil)

	contains := func(keys []types.GateKey, key types.GateKey) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}

	commit, ok := reg.AliasKeys(core.AliasCommit)
	if !ok {
		t.Fatal("commit profile missing")
	}
	if len(commit) != 4 {
		t.Errorf("commit profile has %d gates, want 4: %v", len(commit), commit)
	}
	if contains(commit, KeyGotest) {
		t.Error("commit profile should stay fast and skip test suites")
	}

	pr, ok := reg.AliasKeys(core.AliasPR)
	if !ok {
		t.Fatal("pr profile missing")
	}
	// pr nests commit, so every commit gate is included.
	for _, key := range commit {
		if !contains(pr, key) {
			t.Errorf("pr profile missing commit gate %s", key)
		}
	}
	for _, key := range []types.GateKey{KeyMypy, KeyGotest, KeyPytest, KeyGitleaks} {
		if !contains(pr, key) {
			t.Errorf("pr profile missing %s", key)
		}
	}
	if contains(pr, KeyGocover) || contains(pr, KeyDupl) {
		t.Error("coverage and duplication belong to the full profile only")
	}

	full, ok := reg.AliasKeys(core.AliasFull)
	if !ok {
		t.Fatal("full profile missing")
	}
	if !contains(full, KeyGocover) || !contains(full, KeyDupl) {
		t.Errorf("full profile missing deep gates: %v", full)
	}
	if len(full) != len(reg.Keys()) {
		t.Errorf("full profile should cover every gate: %d of %d", len(full), len(reg.Keys()))
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry(nil)
	if len(reg.Keys()) != 10 {
		t.Errorf("DefaultRegistry registered %d gates, want 10", len(reg.Keys()))
	}
}
