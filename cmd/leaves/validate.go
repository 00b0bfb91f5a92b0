package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cgast/leaves/internal/config"
	"github.com/cgast/leaves/pkg/binder"
	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
	"github.com/cgast/leaves/pkg/taskfile"
)

// newValidateCommand implements `leaves validate`.
func newValidateCommand(opts *options, s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the taskfile for errors",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path, err := resolveTaskfilePath(opts.file, cfg.Taskfile)
			if err != nil {
				return err
			}
			tf, err := taskfile.LoadFile(path)
			if err != nil {
				return fmt.Errorf("load taskfile: %w", err)
			}

			vr := taskfile.Validate(tf)
			if !vr.Valid() {
				fmt.Fprintf(s.out, "Taskfile %q has %d error(s):\n", filepath.Base(path), len(vr.Errors))
				for _, msg := range validationMessages(vr) {
					fmt.Fprintf(s.out, "  - %s\n", msg)
				}
				return fmt.Errorf("validation failed")
			}

			// Defining the tasks runs the same parameter checks as a real run.
			b := binder.New(&params.Resolver{})
			if err := taskfile.Build(tf, task.NewManager(b), b.Decl, nil); err != nil {
				return err
			}

			fmt.Fprintf(s.out, "Taskfile %q is valid (%d tasks).\n", tf.Meta.Name, len(tf.Tasks))
			return nil
		},
	}
}
