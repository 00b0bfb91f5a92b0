package taskfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFiles are the names searched for when no task file is given.
var DefaultFiles = []string{"Leavesfile.yaml", "Leavesfile.yml", "leaves.yaml"}

// LoadFile reads and parses a task file.
func LoadFile(path string) (Taskfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taskfile{}, fmt.Errorf("read taskfile %s: %w", path, err)
	}

	tf, err := Parse(data)
	if err != nil {
		return Taskfile{}, fmt.Errorf("%s: %w", path, err)
	}
	return tf, nil
}

// Parse parses YAML data into a Taskfile.
func Parse(data []byte) (Taskfile, error) {
	var tf Taskfile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return Taskfile{}, fmt.Errorf("parse taskfile: %w", err)
	}
	return tf, nil
}

// Find returns the first default task file present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no taskfile found (looked for %v)", DefaultFiles)
}
