// Package binder attaches parameter declarations to tasks and resolves them
// before the tasks run.
package binder

import (
	"context"
	"errors"

	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
)

// Binder implements task.Hooks for the parameter subsystem.
//
// Declarations staged on Decl between two Define calls belong to the task
// defined by the second call.
type Binder struct {
	Decl     *params.Declaration
	Resolver *params.Resolver
}

var _ task.Hooks = (*Binder)(nil)

// New returns a Binder with a fresh Declaration.
func New(resolver *params.Resolver) *Binder {
	return &Binder{Decl: params.NewDeclaration(), Resolver: resolver}
}

// TaskDefined moves the staged declaration onto t.
func (b *Binder) TaskDefined(t *task.Task) error {
	spec := b.Decl.Drain()

	if t.Params == nil {
		t.Params = params.NewSpec()
	}
	t.Params.Merge(spec)

	if err := t.Params.Validate(); err != nil {
		var specErr *params.SpecError
		if errors.As(err, &specErr) {
			specErr.Task = t.Name
		}
		return err
	}
	return nil
}

// BeforeInvoke resolves t's arguments once.
func (b *Binder) BeforeInvoke(ctx context.Context, t *task.Task) error {
	_, err := b.Args(ctx, t)
	return err
}

// Args returns t's resolved arguments, resolving them if needed.
func (b *Binder) Args(ctx context.Context, t *task.Task) (params.Args, error) {
	return t.ResolveArgs(func() (params.Args, error) {
		resolver := b.Resolver
		if resolver == nil {
			resolver = &params.Resolver{}
		}
		return resolver.Resolve(ctx, t.Name, t.Params)
	})
}
