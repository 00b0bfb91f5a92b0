package params

import "fmt"

// SourceKind says where a resolved value came from.
type SourceKind int

const (
	SourceUnset SourceKind = iota
	SourceAlias
	SourceLookup
	SourceDefault
)

// Source identifies the origin of a value. Key is the lookup key for
// alias and lookup sources.
type Source struct {
	Kind SourceKind
	Key  string
}

func (s Source) String() string {
	switch s.Kind {
	case SourceAlias:
		return fmt.Sprintf("alias %s", s.Key)
	case SourceLookup:
		return fmt.Sprintf("lookup %s", s.Key)
	case SourceDefault:
		return "default"
	default:
		return "unset"
	}
}

// Resolution describes how one parameter would resolve right now.
type Resolution struct {
	Name     string
	Required bool
	Default  string
	Aliases  []string
	Value    string
	Source   Source
}

// Missing reports a required parameter without a value.
func (r Resolution) Missing() bool {
	return r.Required && r.Value == ""
}

// Explain resolves every parameter of spec without prompting or writing to
// the lookup, and reports each value with its source.
func (r *Resolver) Explain(spec *Spec) []Resolution {
	if spec == nil {
		return nil
	}
	out := make([]Resolution, 0, len(spec.required)+len(spec.optional))
	for _, name := range spec.required {
		v, src := r.value(spec, name, "")
		out = append(out, Resolution{Name: name, Required: true, Aliases: spec.Aliases(name), Value: v, Source: src})
	}
	for _, p := range spec.optional {
		v, src := r.value(spec, p.Name, p.Default)
		out = append(out, Resolution{Name: p.Name, Default: p.Default, Aliases: spec.Aliases(p.Name), Value: v, Source: src})
	}
	return out
}
