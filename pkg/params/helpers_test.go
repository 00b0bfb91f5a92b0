package params

import (
	"context"
	"sync"
)

type mapLookup struct {
	mu   sync.Mutex
	vals map[string]string
}

func newMapLookup(vals map[string]string) *mapLookup {
	m := &mapLookup{vals: make(map[string]string)}
	for k, v := range vals {
		m.vals[k] = v
	}
	return m
}

func (m *mapLookup) Lookup(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[name]
	return v, ok
}

func (m *mapLookup) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[name] = value
	return nil
}

type stubPrompter struct {
	answers map[string]string
	calls   []string
}

func (p *stubPrompter) Prompt(_ context.Context, task, param string) (string, error) {
	p.calls = append(p.calls, task+"/"+param)
	return p.answers[param], nil
}

type recordingPublisher struct {
	types []string
}

func (r *recordingPublisher) PublishEvent(eventType string, _ map[string]any) {
	r.types = append(r.types, eventType)
}
