// Package lookup provides the key/value sources parameters resolve from.
package lookup

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Source is a readable and writable key/value store.
type Source interface {
	Lookup(name string) (string, bool)
	Set(name, value string) error
}

// Env reads and writes the process environment.
type Env struct{}

func (Env) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (Env) Set(name, value string) error {
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("setenv %s: %w", name, err)
	}
	return nil
}

// Map is an in-memory Source, safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMap returns a Map seeded with a copy of vals.
func NewMap(vals map[string]string) *Map {
	m := &Map{vals: make(map[string]string, len(vals))}
	for k, v := range vals {
		m.vals[k] = v
	}
	return m
}

func (m *Map) Lookup(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[name]
	return v, ok
}

func (m *Map) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vals == nil {
		m.vals = make(map[string]string)
	}
	m.vals[name] = value
	return nil
}

// Len returns the number of stored values.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vals)
}

// Chain consults its layers in order. The first layer holding a non-empty
// value wins; if all are empty, the first layer that has the key at all
// answers. Set writes to every layer.
type Chain []Source

func (c Chain) Lookup(name string) (string, bool) {
	var (
		fallback string
		found    bool
	)
	for _, s := range c {
		v, ok := s.Lookup(name)
		if !ok {
			continue
		}
		if v != "" {
			return v, true
		}
		if !found {
			fallback, found = v, true
		}
	}
	return fallback, found
}

func (c Chain) Set(name, value string) error {
	var errs []error
	for _, s := range c {
		if err := s.Set(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
