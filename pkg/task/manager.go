package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownTask is wrapped by errors for undefined task names.
var ErrUnknownTask = errors.New("unknown task")

// Hooks lets a collaborator take part in the task lifecycle.
type Hooks interface {
	// TaskDefined runs after every Define call for the task.
	TaskDefined(t *Task) error
	// BeforeInvoke runs when t is invoked, before its prerequisites.
	BeforeInvoke(ctx context.Context, t *Task) error
}

// EventPublisher is the interface for emitting task lifecycle events.
// This avoids a direct dependency on pkg/events.
type EventPublisher interface {
	PublishEvent(eventType string, data map[string]any)
}

// Option configures a Manager.
type Option func(*Manager)

// WithEvents publishes lifecycle events to p.
func WithEvents(p EventPublisher) Option {
	return func(m *Manager) { m.events = p }
}

// Manager owns the task graph.
type Manager struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	order  []string
	hooks  Hooks
	events EventPublisher
}

// NewManager creates a manager. hooks may be nil.
func NewManager(hooks Hooks, opts ...Option) *Manager {
	m := &Manager{
		tasks: make(map[string]*Task),
		hooks: hooks,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Define creates the task name, or enhances it if it already exists, and
// runs the definition hook.
func (m *Manager) Define(name string, def Def) (*Task, error) {
	if name == "" {
		return nil, errors.New("task name is required")
	}

	m.mu.Lock()
	t, exists := m.tasks[name]
	if !exists {
		t = &Task{Name: name}
		m.tasks[name] = t
		m.order = append(m.order, name)
	}
	t.enhance(def)
	prereqs := t.Prereqs
	m.mu.Unlock()

	if m.hooks != nil {
		if err := m.hooks.TaskDefined(t); err != nil {
			return nil, err
		}
	}

	m.publish("task.defined", map[string]any{"task": name, "prereqs": prereqs})
	return t, nil
}

// Lookup returns the task called name.
func (m *Manager) Lookup(name string) (*Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[name]
	return t, ok
}

// Tasks returns all tasks in definition order.
func (m *Manager) Tasks() []*Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Task, len(m.order))
	for i, name := range m.order {
		out[i] = m.tasks[name]
	}
	return out
}

// Find returns the task called name. The error for an undefined name wraps
// ErrUnknownTask.
func (m *Manager) Find(name string) (*Task, error) {
	return m.get(name, "")
}

// Invoke runs the named task after its prerequisites. Dependency cycles
// below the task are reported before anything is invoked.
func (m *Manager) Invoke(ctx context.Context, name string) error {
	t, err := m.Find(name)
	if err != nil {
		return err
	}
	if err := m.checkCycles(t); err != nil {
		return err
	}
	return m.invokeWithCallChain(ctx, t, nil)
}

// checkCycles walks the prerequisites of t without taking any task lock.
// Concurrent prerequisites locking each other around a cycle would
// otherwise block before the call chain could report it. Unknown
// prerequisites are left for invocation to report.
func (m *Manager) checkCycles(t *Task) error {
	done := make(map[string]bool)
	var walk func(t *Task, chain *callChain) error
	walk = func(t *Task, chain *callChain) error {
		chain, err := chain.push(t.Name)
		if err != nil {
			return err
		}
		if done[t.Name] {
			return nil
		}
		for _, name := range t.Prereqs {
			p, ok := m.Lookup(name)
			if !ok {
				continue
			}
			if err := walk(p, chain); err != nil {
				return err
			}
		}
		done[t.Name] = true
		return nil
	}
	return walk(t, nil)
}

func (m *Manager) get(name, requiredBy string) (*Task, error) {
	t, ok := m.Lookup(name)
	if ok {
		return t, nil
	}
	if requiredBy != "" {
		return nil, fmt.Errorf("don't know how to build task '%s' (required by '%s'): %w", name, requiredBy, ErrUnknownTask)
	}
	return nil, fmt.Errorf("don't know how to build task '%s': %w", name, ErrUnknownTask)
}

func (m *Manager) invokeWithCallChain(ctx context.Context, t *Task, chain *callChain) error {
	chain, err := chain.push(t.Name)
	if err != nil {
		return err
	}

	// Hooks run before the already-invoked check so every path into a
	// task is checked before any prerequisite executes.
	if m.hooks != nil {
		if err := m.hooks.BeforeInvoke(ctx, t); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.invoked {
		return nil
	}
	t.invoked = true
	m.publish("task.invoke", map[string]any{"task": t.Name, "chain": chain.String()})

	if err := m.invokePrereqs(ctx, t, chain); err != nil {
		return err
	}
	return m.execute(ctx, t)
}

func (m *Manager) invokePrereqs(ctx context.Context, t *Task, chain *callChain) error {
	prereqs := make([]*Task, 0, len(t.Prereqs))
	for _, name := range t.Prereqs {
		p, err := m.get(name, t.Name)
		if err != nil {
			return err
		}
		prereqs = append(prereqs, p)
	}

	if !t.Parallel || len(prereqs) < 2 {
		for _, p := range prereqs {
			if err := m.invokeWithCallChain(ctx, p, chain); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range prereqs {
		g.Go(func() error {
			return m.invokeWithCallChain(gctx, p, chain)
		})
	}
	return g.Wait()
}

func (m *Manager) execute(ctx context.Context, t *Task) error {
	if len(t.Actions) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	m.publish("task.execute", map[string]any{"task": t.Name})

	args := t.Args()
	for _, action := range t.Actions {
		if err := action(ctx, t, args); err != nil {
			m.publish("task.error", map[string]any{"task": t.Name, "error": err.Error()})
			return fmt.Errorf("task %s: %w", t.Name, err)
		}
	}

	m.publish("task.end", map[string]any{"task": t.Name, "duration": time.Since(start)})
	return nil
}

func (m *Manager) publish(eventType string, data map[string]any) {
	if m.events != nil {
		m.events.PublishEvent(eventType, data)
	}
}
