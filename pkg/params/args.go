package params

import (
	"maps"
	"slices"
)

// Args is the resolved name to value mapping of a task.
type Args map[string]string

// Get returns the value of name, or "" when it is unset.
func (a Args) Get(name string) string {
	return a[name]
}

// Names returns the argument names sorted.
func (a Args) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Environ renders the arguments as NAME=value pairs, sorted by name.
func (a Args) Environ() []string {
	env := make([]string, 0, len(a))
	for _, name := range a.Names() {
		env = append(env, name+"="+a[name])
	}
	return env
}

// Clone returns a copy of a.
func (a Args) Clone() Args {
	return maps.Clone(a)
}
