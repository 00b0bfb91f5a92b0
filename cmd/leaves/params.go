package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cgast/leaves/pkg/params"
)

// newParamsCommand implements `leaves params TASK... [NAME=value...]`. It
// shows how each parameter would resolve without prompting or running.
func newParamsCommand(opts *options, s streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params TASK... [NAME=value...]",
		Short: "Show how task parameters resolve",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, overrides := splitArgs(args)

			a, err := newApp(opts, s, overrides)
			if err != nil {
				return err
			}
			defer a.close()

			var missing []string
			for _, name := range names {
				t, err := a.manager.Find(name)
				if err != nil {
					return err
				}
				res := a.binder.Resolver.Explain(t.Params)
				printResolutions(s, name, res, t.Params != nil && t.Params.Interactive)
				for _, r := range res {
					if r.Missing() {
						missing = append(missing, name+"."+r.Name)
					}
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("unresolved parameters: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func printResolutions(s streams, taskName string, res []params.Resolution, interactive bool) {
	header := taskName
	if interactive {
		header += " (prompts for missing)"
	}
	fmt.Fprintln(s.out, color.New(color.Bold).Sprint(header))
	if len(res) == 0 {
		fmt.Fprintln(s.out, "  no parameters")
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, r := range res {
		kind := "optional"
		if r.Required {
			kind = "required"
		}
		value := fmt.Sprintf("%q", r.Value)
		if r.Missing() {
			value = color.New(color.FgRed).Sprint("(missing)")
		}
		extra := ""
		if len(r.Aliases) > 0 {
			extra = "aliases: " + strings.Join(r.Aliases, ", ")
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", r.Name, kind, value, r.Source, extra)
	}
	tw.Flush()
}
