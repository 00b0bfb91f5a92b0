package params

import (
	"context"
	"fmt"
	"strings"
)

// Lookup is the external key/value source parameters are read from.
// Names are case-sensitive.
type Lookup interface {
	Lookup(name string) (string, bool)
	Set(name, value string) error
}

// Prompter asks the user for a missing required parameter.
type Prompter interface {
	Prompt(ctx context.Context, task, param string) (string, error)
}

// EventPublisher is the interface for emitting resolution events.
// This avoids a direct dependency on pkg/events.
type EventPublisher interface {
	PublishEvent(eventType string, data map[string]any)
}

// Resolver computes task arguments from a Spec.
type Resolver struct {
	Lookup   Lookup
	Prompter Prompter
	Events   EventPublisher
}

// Resolve returns the arguments for task. Every name in spec is a key of the
// result. Required names that stay empty are prompted for when
// spec.Interactive is set and a Prompter is configured; otherwise they are
// collected and returned together as a *MissingParamsError. A blank answer
// leaves the name missing.
func (r *Resolver) Resolve(ctx context.Context, task string, spec *Spec) (Args, error) {
	if spec == nil {
		spec = NewSpec()
	}

	args := make(Args, len(spec.required)+len(spec.optional))
	var missing []string

	resolveOne := func(name, def string, required bool) error {
		value, _ := r.value(spec, name, def)

		if value == "" && required {
			if !spec.Interactive || r.Prompter == nil {
				missing = append(missing, name)
				return nil
			}
			answer, err := r.Prompter.Prompt(ctx, task, name)
			if err != nil {
				return fmt.Errorf("prompt %s for %s: %w", task, name, err)
			}
			value = strings.TrimSpace(answer)
			if value == "" {
				missing = append(missing, name)
				return nil
			}
			if r.Lookup != nil {
				if err := r.Lookup.Set(name, value); err != nil {
					return fmt.Errorf("store %s: %w", name, err)
				}
			}
			r.publish("params.prompted", map[string]any{"task": task, "param": name})
		}

		args[name] = value
		return nil
	}

	for _, name := range spec.required {
		if err := resolveOne(name, "", true); err != nil {
			return nil, err
		}
	}
	for _, p := range spec.optional {
		if err := resolveOne(p.Name, p.Default, false); err != nil {
			return nil, err
		}
	}

	if len(missing) > 0 {
		r.publish("params.missing", map[string]any{"task": task, "params": missing})
		return nil, &MissingParamsError{Task: task, Names: missing}
	}

	r.publish("params.resolved", map[string]any{"task": task, "params": args.Names()})
	return args, nil
}

// value applies the per-name precedence: newest non-empty alias, then the
// name itself, then the default. It also reports where the value came from.
func (r *Resolver) value(spec *Spec, name, def string) (string, Source) {
	aliases := spec.aliases[name]
	for i := len(aliases) - 1; i >= 0; i-- {
		if v := r.lookup(aliases[i]); v != "" {
			return v, Source{Kind: SourceAlias, Key: aliases[i]}
		}
	}
	if v := r.lookup(name); v != "" {
		return v, Source{Kind: SourceLookup, Key: name}
	}
	if def != "" {
		return def, Source{Kind: SourceDefault}
	}
	return "", Source{Kind: SourceUnset}
}

func (r *Resolver) lookup(name string) string {
	if r.Lookup == nil {
		return ""
	}
	v, _ := r.Lookup.Lookup(name)
	return v
}

func (r *Resolver) publish(eventType string, data map[string]any) {
	if r.Events != nil {
		r.Events.PublishEvent(eventType, data)
	}
}
