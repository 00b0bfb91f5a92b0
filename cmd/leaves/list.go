package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCommand implements `leaves list`.
func newListCommand(opts *options, s streams) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"tasks"},
		Short:   "List tasks and their parameters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, s, nil)
			if err != nil {
				return err
			}
			defer a.close()

			for _, t := range a.manager.Tasks() {
				if t.Description == "" && !all {
					continue
				}
				var names []string
				if t.Params != nil {
					names = t.Params.Names()
				}
				fmt.Fprintln(s.out, describeTask(t.Name, t.Description, names))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "A", false, "include tasks without a description")
	return cmd
}
