package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the runtime configuration from .leaves/config.yaml.
type Config struct {
	Taskfile  string       `yaml:"taskfile"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"` // "text" or "json"
	Color     string       `yaml:"color"`      // "auto", "always", "never"
	Prompt    PromptConfig `yaml:"prompt"`
	Store     StoreConfig  `yaml:"store"`
}

// PromptConfig controls interactive parameter prompts.
type PromptConfig struct {
	// Enabled allows tasks declared with prompt: true to ask on stdin.
	// When false, their missing parameters are reported like any other.
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
}

// StoreConfig defines where prompted answers are remembered.
type StoreConfig struct {
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
	Remember  bool   `yaml:"remember"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     "auto",
		Prompt: PromptConfig{
			Enabled: true,
			Format:  "%s requires %s: ",
		},
		Store: StoreConfig{
			Path: ".leaves/params.db",
		},
	}
}

// LoadConfig reads and parses a runtime config YAML file.
// ${VAR} references are replaced with environment values before parsing.
// Returns default config if the file doesn't exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	interpolated := interpolateEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports unknown enumerated values.
func (c Config) Validate() error {
	var problems []string
	if !oneOf(c.LogLevel, "debug", "info", "warn", "error") {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if !oneOf(c.LogFormat, "text", "json") {
		problems = append(problems, fmt.Sprintf("unknown log_format %q", c.LogFormat))
	}
	if !oneOf(c.Color, "auto", "always", "never") {
		problems = append(problems, fmt.Sprintf("unknown color %q", c.Color))
	}
	if c.Prompt.Format != "" && strings.Count(c.Prompt.Format, "%s") != 2 {
		problems = append(problems, "prompt.format must contain two %s verbs (task, param)")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func interpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match // Leave unresolved if not set.
	})
}
