// Package task is a small dependency-graph task runner.
//
// Tasks are defined by name with prerequisites and actions. Invoking a task
// invokes its prerequisites first and executes each task at most once. The
// parameter subsystem plugs in through Hooks: it attaches a parameter spec
// when a task is defined and resolves arguments before a task is invoked.
package task

import (
	"context"
	"sync"

	"github.com/cgast/leaves/pkg/params"
)

// Action is one unit of work of a task. args are the task's resolved
// parameters.
type Action func(ctx context.Context, t *Task, args params.Args) error

// Def describes a task definition. Defining the same name again enhances
// the existing task.
type Def struct {
	Description string
	Prereqs     []string
	Parallel    bool
	Actions     []Action
}

// Task is a named node of the graph.
type Task struct {
	Name        string
	Description string
	Prereqs     []string

	// Parallel invokes prerequisites concurrently.
	Parallel bool
	Actions  []Action

	// Params is attached by the definition hook. Nil when the task
	// declares no parameters.
	Params *params.Spec

	args params.Memo

	mu      sync.Mutex
	invoked bool
}

// Args returns the resolved parameters, or nil before resolution.
func (t *Task) Args() params.Args {
	args, _ := t.args.Value()
	return args
}

// ResolveArgs returns the memoized parameters, computing them with fn on the
// first successful call.
func (t *Task) ResolveArgs(fn func() (params.Args, error)) (params.Args, error) {
	return t.args.Get(fn)
}

// Invoked reports whether the task has been invoked.
func (t *Task) Invoked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.invoked
}

func (t *Task) enhance(def Def) {
	if def.Description != "" {
		t.Description = def.Description
	}
	for _, p := range def.Prereqs {
		if !contains(t.Prereqs, p) {
			t.Prereqs = append(t.Prereqs, p)
		}
	}
	t.Parallel = t.Parallel || def.Parallel
	t.Actions = append(t.Actions, def.Actions...)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
