package taskfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
)

// Shell runs task scripts.
type Shell struct {
	// Command is the interpreter and its flags; the script is appended.
	// Defaults to sh -c.
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

// templatePattern matches {{param_name}} patterns.
var templatePattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.-]*)\s*\}\}`)

// Expand replaces {{name}} placeholders with argument values. Unknown names
// are left as they are.
func Expand(script string, args params.Args) string {
	return templatePattern.ReplaceAllStringFunc(script, func(match string) string {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}"))
		if val, ok := args[name]; ok {
			return val
		}
		return match
	})
}

// Action returns a task action running script with the task's arguments
// substituted and exported into the environment.
func (s *Shell) Action(script string) task.Action {
	return func(ctx context.Context, _ *task.Task, args params.Args) error {
		command := s.Command
		if len(command) == 0 {
			command = []string{"sh", "-c"}
		}
		argv := append(append([]string(nil), command[1:]...), Expand(script, args))

		cmd := exec.CommandContext(ctx, command[0], argv...)
		cmd.Dir = s.Dir
		cmd.Env = append(os.Environ(), args.Environ()...)
		cmd.Stdout = writerOr(s.Stdout, os.Stdout)
		cmd.Stderr = writerOr(s.Stderr, os.Stderr)

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("run script: %w", err)
		}
		return nil
	}
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
