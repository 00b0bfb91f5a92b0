package params

import (
	"fmt"
	"slices"
	"strings"
)

// Param is an optional parameter and the value used when nothing else
// supplies one.
type Param struct {
	Name    string
	Default string
}

// Default is shorthand for an optional Param.
func Default(name, value string) Param {
	return Param{Name: name, Default: value}
}

// Spec records the parameters a single task accepts.
// It is built once when the task is defined and only grows afterwards.
type Spec struct {
	required []string
	optional []Param
	aliases  map[string][]string

	// Interactive asks for missing required values on the prompter
	// instead of failing.
	Interactive bool
}

// NewSpec returns an empty Spec.
func NewSpec() *Spec {
	return &Spec{aliases: make(map[string][]string)}
}

// AddRequired adds a required parameter. Re-adding a name is a no-op.
func (s *Spec) AddRequired(name string) {
	for _, n := range s.required {
		if n == name {
			return
		}
	}
	s.required = append(s.required, name)
}

// AddOptional adds an optional parameter. Re-adding a name replaces its
// default but keeps its position.
func (s *Spec) AddOptional(name, def string) {
	for i, p := range s.optional {
		if p.Name == name {
			s.optional[i].Default = def
			return
		}
	}
	s.optional = append(s.optional, Param{Name: name, Default: def})
}

// AddAlias registers alias as an alternate lookup key for canonical.
func (s *Spec) AddAlias(alias, canonical string) {
	if s.aliases == nil {
		s.aliases = make(map[string][]string)
	}
	s.aliases[canonical] = append(s.aliases[canonical], alias)
}

// Merge adds everything declared in other to s.
func (s *Spec) Merge(other *Spec) {
	if other == nil {
		return
	}
	for _, name := range other.required {
		s.AddRequired(name)
	}
	for _, p := range other.optional {
		s.AddOptional(p.Name, p.Default)
	}
	for _, canonical := range other.aliasOrder() {
		for _, alias := range other.aliases[canonical] {
			s.AddAlias(alias, canonical)
		}
	}
	s.Interactive = s.Interactive || other.Interactive
}

// Required returns the required names in declaration order.
func (s *Spec) Required() []string {
	return append([]string(nil), s.required...)
}

// Optional returns the optional parameters in declaration order.
func (s *Spec) Optional() []Param {
	return append([]Param(nil), s.optional...)
}

// Aliases returns the aliases of canonical in declaration order.
func (s *Spec) Aliases(canonical string) []string {
	return append([]string(nil), s.aliases[canonical]...)
}

// Names returns every parameter name, required first.
func (s *Spec) Names() []string {
	names := make([]string, 0, len(s.required)+len(s.optional))
	names = append(names, s.required...)
	for _, p := range s.optional {
		names = append(names, p.Name)
	}
	return names
}

// IsRequired reports whether name is a required parameter.
func (s *Spec) IsRequired(name string) bool {
	for _, n := range s.required {
		if n == name {
			return true
		}
	}
	return false
}

// Empty reports whether the spec declares nothing.
func (s *Spec) Empty() bool {
	return len(s.required) == 0 && len(s.optional) == 0 && len(s.aliases) == 0
}

// Validate checks the spec for structural problems and reports all of them.
func (s *Spec) Validate() error {
	var problems []string

	declared := make(map[string]bool)
	for _, name := range s.required {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "empty required parameter name")
			continue
		}
		declared[name] = true
	}
	for _, p := range s.optional {
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, "empty optional parameter name")
			continue
		}
		if declared[p.Name] {
			problems = append(problems, fmt.Sprintf("parameter %q is both required and optional", p.Name))
			continue
		}
		declared[p.Name] = true
	}
	for _, canonical := range s.aliasOrder() {
		if !declared[canonical] {
			problems = append(problems, fmt.Sprintf("alias %s for undeclared parameter %q",
				strings.Join(quoteAll(s.aliases[canonical]), ", "), canonical))
		}
		for _, alias := range s.aliases[canonical] {
			if strings.TrimSpace(alias) == "" {
				problems = append(problems, fmt.Sprintf("empty alias for parameter %q", canonical))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &SpecError{Problems: problems}
}

// aliasOrder returns the canonical names that have aliases, in the order the
// names were declared, followed by undeclared names in lexical order.
func (s *Spec) aliasOrder() []string {
	if len(s.aliases) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(s.aliases))
	var order []string
	for _, name := range s.Names() {
		if _, ok := s.aliases[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	var rest []string
	for name := range s.aliases {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
