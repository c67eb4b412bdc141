package store

import (
	"fmt"
	"strings"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// Opener creates a KV backend from the part of a DSN that follows its scheme.
type Opener func(location string) (KV, error)

// Registry maps DSN schemes (e.g., "sqlite://") to KV openers.
type Registry struct {
	entries  []entry
	fallback Opener
}

type entry struct {
	scheme string
	open   Opener
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry knows the memory:// and sqlite:// schemes. DSNs without a scheme are
// treated as sqlite file paths.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("memory://", func(string) (KV, error) { return NewMemoryKV(), nil })
	openSQLite := func(location string) (KV, error) { return OpenSQLite(location) }
	r.Register("sqlite://", openSQLite)
	r.fallback = openSQLite
	return r
}

// Register associates a scheme prefix with an opener.
func (r *Registry) Register(scheme string, open Opener) {
	r.entries = append(r.entries, entry{scheme: scheme, open: open})
}

// Open returns the backend matching the scheme of dsn.
// Returns an error wrapping domain.ErrUnsupportedStore if no backend matches.
func (r *Registry) Open(dsn string) (KV, error) {
	for _, e := range r.entries {
		if strings.HasPrefix(dsn, e.scheme) {
			return e.open(strings.TrimPrefix(dsn, e.scheme))
		}
	}
	if r.fallback != nil && dsn != "" && !strings.Contains(dsn, "://") {
		return r.fallback(dsn)
	}
	return nil, fmt.Errorf("no backend for %q: %w", dsn, domain.ErrUnsupportedStore)
}
