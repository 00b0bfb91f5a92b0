// Package taskfile loads task definitions from YAML and drives the
// parameter declaration API while defining them.
package taskfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Taskfile is the parsed contents of a leaves task file.
type Taskfile struct {
	APIVersion string    `yaml:"apiVersion" json:"apiVersion"`
	Kind       string    `yaml:"kind" json:"kind"`
	Meta       Meta      `yaml:"meta" json:"meta"`
	Tasks      []TaskDef `yaml:"tasks" json:"tasks"`
}

// Meta contains metadata about the task file.
type Meta struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// TaskDef defines one task and the parameters it takes.
type TaskDef struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Deps        []string      `yaml:"deps" json:"deps"`
	Parallel    bool          `yaml:"parallel" json:"parallel"`
	Params      []string      `yaml:"params" json:"params"`
	Optional    []OptionalDef `yaml:"optional" json:"optional"`
	Aliases     []AliasDef    `yaml:"aliases" json:"aliases"`
	Prompt      bool          `yaml:"prompt" json:"prompt"` // ask for missing params on stdin
	Run         string        `yaml:"run" json:"run"`
}

// OptionalDef is an optional parameter with its default.
type OptionalDef struct {
	Name    string `yaml:"name" json:"name"`
	Default Scalar `yaml:"default" json:"default"`
}

// AliasDef maps an alternate key onto a declared parameter.
type AliasDef struct {
	Alias string `yaml:"alias" json:"alias"`
	Param string `yaml:"param" json:"param"`
}

// Scalar is a YAML scalar kept as its literal text, so `default: 30` and
// `default: "30"` both decode to "30".
type Scalar string

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: default must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(value.Value)
	return nil
}

// Task returns the definition of the named task.
func (tf Taskfile) Task(name string) (TaskDef, bool) {
	for _, td := range tf.Tasks {
		if td.Name == name {
			return td, true
		}
	}
	return TaskDef{}, false
}
