package core

import (
	"sync"

	"go.uber.org/zap"

	"github.com/EmundoT/gate-check/internal/types"
)

// Registry catalogs gate definitions and named aliases (profiles). It is
// an explicit value passed to the Executor so tests can construct
// isolated registries; there is no process-wide singleton.
//
// Registration happens at wiring time; during a run the registry is
// read-only and requires no locking beyond its own mutex.
type Registry struct {
	mu          sync.RWMutex
	definitions map[types.GateKey]GateDefinition
	aliases     map[string][]string
	logger      *zap.Logger
}

// NewRegistry creates an empty registry. logger may be nil.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		definitions: make(map[types.GateKey]GateDefinition),
		aliases:     make(map[string][]string),
		logger:      logger,
	}
}

// Register inserts or replaces a definition under its key.
// Re-registration overwrites silently, which supports hot-reload and
// test isolation.
func (r *Registry) Register(def GateDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Key] = def
}

// RegisterAlias stores a named, ordered list of gate keys or other alias
// names. Aliases nest one level; expansion flattens eagerly.
func (r *Registry) RegisterAlias(name string, names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[name] = append([]string(nil), names...)
}

// Definition returns the registered definition for a key.
func (r *Registry) Definition(key types.GateKey) (GateDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[key]
	return def, ok
}

// Keys returns every registered key, unordered.
func (r *Registry) Keys() []types.GateKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]types.GateKey, 0, len(r.definitions))
	for key := range r.definitions {
		keys = append(keys, key)
	}
	return keys
}

// Aliases returns the registered alias names, unordered.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.aliases))
	for name := range r.aliases {
		names = append(names, name)
	}
	return names
}

// AliasKeys returns the expanded key list for one alias.
func (r *Registry) AliasKeys(name string) ([]types.GateKey, bool) {
	r.mu.RLock()
	_, ok := r.aliases[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Expand([]string{name}, Callbacks{}), true
}

// Expand resolves a mixed list of explicit keys and alias names into a
// deduplicated, order-preserving key list. Unknown names are dropped
// with a warning callback, not an error.
func (r *Registry) Expand(names []string, cb Callbacks) []types.GateKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[types.GateKey]bool)
	var keys []types.GateKey

	add := func(key types.GateKey) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, name := range names {
		resolved := r.resolveLocked(name)
		if resolved == nil {
			r.logger.Warn("unknown gate or alias", zap.String("name", name))
			cb.unknownName(name)
			continue
		}
		for _, key := range resolved {
			add(key)
		}
	}
	return keys
}

// resolveLocked resolves one name to keys: a registered key resolves to
// itself, an alias to its members (one level of alias nesting allowed).
// Returns nil for unknown names. Caller holds the read lock.
func (r *Registry) resolveLocked(name string) []types.GateKey {
	if _, ok := r.definitions[types.GateKey(name)]; ok {
		return []types.GateKey{types.GateKey(name)}
	}
	members, ok := r.aliases[name]
	if !ok {
		return nil
	}
	var keys []types.GateKey
	for _, member := range members {
		if _, ok := r.definitions[types.GateKey(member)]; ok {
			keys = append(keys, types.GateKey(member))
			continue
		}
		// One level of alias-in-alias: expand nested members that are
		// themselves registered keys; deeper nesting is not resolved.
		if nested, ok := r.aliases[member]; ok {
			for _, inner := range nested {
				if _, ok := r.definitions[types.GateKey(inner)]; ok {
					keys = append(keys, types.GateKey(inner))
				} else {
					r.logger.Warn("unknown gate in nested alias",
						zap.String("alias", member), zap.String("name", inner))
				}
			}
			continue
		}
		r.logger.Warn("unknown gate in alias",
			zap.String("alias", name), zap.String("name", member))
	}
	return keys
}

// Instantiate extracts the gate-specific configuration fragment
// (config[category].gates[name], defaulting to empty) and invokes the
// definition's factory. Returns nil for unregistered keys.
func (r *Registry) Instantiate(key types.GateKey, cfg *types.Config) Gate {
	r.mu.RLock()
	def, ok := r.definitions[key]
	r.mu.RUnlock()
	if !ok {
		r.logger.Warn("instantiate: gate not registered", zap.String("key", key.String()))
		return nil
	}
	return def.Factory(cfg.GateConfigFor(key))
}
