package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newAnswersCommand implements `leaves answers [--forget NAME...]`.
func newAnswersCommand(opts *options, s streams) *cobra.Command {
	var forget bool
	cmd := &cobra.Command{
		Use:   "answers [--forget NAME...]",
		Short: "Show or forget remembered parameter answers",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			if forget && len(args) == 0 {
				return errors.New("--forget needs at least one parameter name")
			}
			if !forget && len(args) > 0 {
				return fmt.Errorf("unexpected arguments %v (did you mean --forget?)", args)
			}

			opts.remember = true
			a, err := newApp(opts, s, nil)
			if err != nil {
				return err
			}
			defer a.close()

			if forget {
				for _, name := range args {
					if err := a.store.Delete(name); err != nil {
						return fmt.Errorf("forget %s: %w", name, err)
					}
					fmt.Fprintf(s.out, "Forgot %s\n", name)
				}
				return nil
			}

			stored, err := a.store.List()
			if err != nil {
				return fmt.Errorf("list answers: %w", err)
			}
			if len(stored) == 0 {
				fmt.Fprintln(s.out, "No remembered answers.")
				return nil
			}
			tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
			for _, name := range slices.Sorted(maps.Keys(stored)) {
				fmt.Fprintf(tw, "%s\t%q\n", name, stored[name])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&forget, "forget", false, "delete the named answers")
	return cmd
}
