package taskfile

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for a task file.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if no validation errors were found.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message from all validation errors.
func (r ValidationResult) Error() string {
	if r.Valid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a Taskfile for required fields and structural correctness.
func Validate(tf Taskfile) ValidationResult {
	var result ValidationResult

	if tf.APIVersion == "" {
		result.add("apiVersion", "required")
	} else if tf.APIVersion != "leaves/v1" {
		result.add("apiVersion", "unsupported version %q (expected leaves/v1)", tf.APIVersion)
	}

	if tf.Kind == "" {
		result.add("kind", "required")
	} else if tf.Kind != "Taskfile" {
		result.add("kind", "unsupported kind %q (expected Taskfile)", tf.Kind)
	}

	if len(tf.Tasks) == 0 {
		result.add("tasks", "at least one task is required")
	}

	names := make(map[string]bool, len(tf.Tasks))
	for i, td := range tf.Tasks {
		field := fmt.Sprintf("tasks[%d].name", i)
		switch {
		case strings.TrimSpace(td.Name) == "":
			result.add(field, "required")
		case names[td.Name]:
			result.add(field, "duplicate task name %q", td.Name)
		default:
			names[td.Name] = true
		}
	}

	for i, td := range tf.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		for j, dep := range td.Deps {
			field := fmt.Sprintf("%s.deps[%d]", prefix, j)
			if dep == td.Name {
				result.add(field, "task %q depends on itself", td.Name)
			} else if !names[dep] {
				result.add(field, "unknown task %q", dep)
			}
		}

		validateParams(&result, prefix, td)
	}

	validateCycles(&result, tf)

	return result
}

// validateCycles reports each dependency cycle once, on the deps of the task
// that closes it. Self-dependencies are reported by the deps check.
func validateCycles(result *ValidationResult, tf Taskfile) {
	index := make(map[string]int, len(tf.Tasks))
	for i, td := range tf.Tasks {
		if _, dup := index[td.Name]; !dup {
			index[td.Name] = i
		}
	}

	const (
		visiting = 1
		visited  = 2
	)
	state := make(map[string]int, len(tf.Tasks))
	var path []string

	var visit func(name string)
	visit = func(name string) {
		state[name] = visiting
		path = append(path, name)

		i := index[name]
		for _, dep := range tf.Tasks[i].Deps {
			if _, ok := index[dep]; !ok || dep == name {
				continue
			}
			switch state[dep] {
			case visiting:
				cycle := append(slices.Clone(path[slices.Index(path, dep):]), dep)
				result.add(fmt.Sprintf("tasks[%d].deps", i), "dependency cycle %s", strings.Join(cycle, " => "))
			case 0:
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		state[name] = visited
	}

	for _, td := range tf.Tasks {
		if state[td.Name] == 0 {
			visit(td.Name)
		}
	}
}

func validateParams(result *ValidationResult, prefix string, td TaskDef) {
	declared := make(map[string]bool)

	for j, name := range td.Params {
		field := fmt.Sprintf("%s.params[%d]", prefix, j)
		switch {
		case strings.TrimSpace(name) == "":
			result.add(field, "required")
		case declared[name]:
			result.add(field, "duplicate param %q", name)
		default:
			declared[name] = true
		}
	}

	for j, opt := range td.Optional {
		field := fmt.Sprintf("%s.optional[%d].name", prefix, j)
		switch {
		case strings.TrimSpace(opt.Name) == "":
			result.add(field, "required")
		case declared[opt.Name]:
			result.add(field, "duplicate param %q", opt.Name)
		default:
			declared[opt.Name] = true
		}
	}

	for j, a := range td.Aliases {
		field := fmt.Sprintf("%s.aliases[%d]", prefix, j)
		if strings.TrimSpace(a.Alias) == "" {
			result.add(field+".alias", "required")
		}
		if !declared[a.Param] {
			result.add(field+".param", "alias %q refers to undeclared param %q", a.Alias, a.Param)
		}
	}
}
