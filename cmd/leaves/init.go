package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const sampleTaskfile = `apiVersion: leaves/v1
kind: Taskfile
meta:
  name: example
  description: Example tasks
tasks:
  - name: default
    deps: [greet]

  - name: greet
    description: Say hello
    params: [name]
    optional:
      - name: greeting
        default: Hello
    aliases:
      - alias: USER
        param: name
    prompt: true
    run: echo "{{greeting}}, {{name}}!"
`

// newInitCommand implements `leaves init [--output=path]`.
func newInitCommand(s streams) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example taskfile",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(outputPath); err == nil {
				return fmt.Errorf("file %q already exists (use --output to specify a different path)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}

			if err := os.WriteFile(outputPath, []byte(sampleTaskfile), 0644); err != nil {
				return fmt.Errorf("write taskfile: %w", err)
			}

			fmt.Fprintf(s.out, "Created %s\n", outputPath)
			fmt.Fprintln(s.out, "Edit the file to define your tasks, then run:")
			fmt.Fprintf(s.out, "  leaves -f %s greet\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "Leavesfile.yaml", "where to write the taskfile")
	return cmd
}
