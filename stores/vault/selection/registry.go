package selection

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault"
	"github.com/hashicorp/go-version"
)

// MatchFunc reports whether a strategy can serve the described backend.
type MatchFunc func(id vault.StoreIdentity) bool

type registration struct {
	match    MatchFunc
	strategy Strategy
}

// Registry maps backend descriptions to strategies. Registrations are consulted in the order
// they were made and the first match wins. The first Detect freezes the registry.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
	frozen  bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process wide registry, holding the built-in strategies:
// windowed scans on postgres and on sqlite 3.25 or later, and a streamed fold on any other sqlite.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()

		// errors are impossible on a fresh registry
		_ = defaultRegistry.Register(EngineIs("postgres"), NewWindowedStrategy(PostgresDialect))
		_ = defaultRegistry.Register(EngineAtLeast("sqlite", "3.25.0"), NewWindowedStrategy(SqliteDialect))
		_ = defaultRegistry.Register(EngineIs("sqlite"), NewFoldStrategy(SqliteDialect))
	})

	return defaultRegistry
}

// RegisterStrategy adds a strategy to the process wide registry. It is consulted after the
// built-ins, so it only serves backends none of them match.
func RegisterStrategy(match MatchFunc, strategy Strategy) error {
	return DefaultRegistry().Register(match, strategy)
}

func (r *Registry) Register(match MatchFunc, strategy Strategy) error {
	if match == nil || strategy == nil {
		return errors.NewConfigurationError("strategy registration needs a match func and a strategy")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.NewConfigurationError("cannot register strategy %s after selection has started", strategy.Name())
	}

	r.entries = append(r.entries, registration{match: match, strategy: strategy})

	return nil
}

// Detect resolves the strategy for a backend. A strategy that cannot provide at least repeatable
// read isolation is refused, since the claim's ownership re-check is only sound under it.
func (r *Registry) Detect(id vault.StoreIdentity) (Strategy, error) {
	r.mu.Lock()
	r.frozen = true
	entries := r.entries
	r.mu.Unlock()

	for _, e := range entries {
		if !e.match(id) {
			continue
		}

		if isolation := e.strategy.Isolation(); isolation < sql.LevelRepeatableRead {
			return nil, errors.NewUnsupportedBackendError("strategy %s for %s only provides %s isolation", e.strategy.Name(), id, isolation)
		}

		return e.strategy, nil
	}

	return nil, errors.NewUnsupportedBackendError("no selection strategy registered for %s", id)
}

// Strategies lists the registered strategy names in registration order.
func (r *Registry) Strategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.strategy.Name()
	}

	return names
}

// EngineIs matches any version of engine.
func EngineIs(engine string) MatchFunc {
	return func(id vault.StoreIdentity) bool {
		return strings.EqualFold(id.Engine, engine)
	}
}

// EngineAtLeast matches engine when the version it reports is minimum or later. Reports that
// carry no recognisable version do not match.
func EngineAtLeast(engine, minimum string) MatchFunc {
	minVersion := version.Must(version.NewVersion(minimum))

	return func(id vault.StoreIdentity) bool {
		if !strings.EqualFold(id.Engine, engine) {
			return false
		}

		v, ok := parseVersion(id.Version)

		return ok && v.GreaterThanOrEqual(minVersion)
	}
}

// parseVersion takes the first token that reads as a version, so that both "3.46.0" and
// "PostgreSQL 16.2 on x86_64-pc-linux-gnu" work.
func parseVersion(s string) (*version.Version, bool) {
	for _, field := range strings.Fields(s) {
		field = strings.TrimRight(field, ",")

		if field == "" || field[0] < '0' || field[0] > '9' {
			continue
		}

		if v, err := version.NewVersion(field); err == nil {
			return v, true
		}
	}

	return nil, false
}
