package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cgast/leaves/pkg/params"
)

// streams are the process stdio, swapped out in tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// options collects flags shared by the subcommands.
type options struct {
	file       string
	configPath string
	logLevel   string
	logFormat  string
	color      string
	params     []string
	remember   bool
	noPrompt   bool
	trace      bool
}

// execute runs the CLI and returns the process exit status.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	s := streams{in: in, out: out, err: errOut}
	opts := &options{}

	root := newRootCommand(opts, s)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		reportError(colorFor(color.New(color.FgRed), opts.color, s.err), s.err, err)
		return 1
	}
	return 0
}

func newRootCommand(opts *options, s streams) *cobra.Command {
	root := &cobra.Command{
		Use:   "leaves [TASK...] [NAME=value...]",
		Short: "Run tasks with declared parameters",
		Long: `leaves runs tasks from a Leavesfile. Tasks declare required and optional
parameters, resolved from NAME=value arguments, --param flags, the
environment, remembered answers, or an interactive prompt.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd.Context(), opts, s, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "path to the taskfile (default: Leavesfile.yaml)")
	pf.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to the runtime config")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&opts.color, "color", "", "color output: auto, always, never")

	addRunFlags(root, opts)

	root.AddCommand(
		newRunCommand(opts, s),
		newListCommand(opts, s),
		newParamsCommand(opts, s),
		newValidateCommand(opts, s),
		newAnswersCommand(opts, s),
		newInitCommand(s),
	)
	return root
}

func addRunFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringArrayVarP(&opts.params, "param", "p", nil, "set a parameter (NAME=value), repeatable")
	f.BoolVar(&opts.remember, "remember", false, "remember prompted answers for later runs")
	f.BoolVar(&opts.noPrompt, "no-prompt", false, "never prompt; report missing parameters instead")
	f.BoolVar(&opts.trace, "trace", false, "print each task's events to stderr after the run")
}

func newRunCommand(opts *options, s streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [TASK...] [NAME=value...]",
		Short: "Invoke tasks and their prerequisites",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd.Context(), opts, s, args)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

// reportError prints err the way the exit-code contract expects: missing
// parameters as one line each, anything else behind an abort banner.
func reportError(red *color.Color, w io.Writer, err error) {

	var missing *params.MissingParamsError
	if errors.As(err, &missing) {
		for _, msg := range missing.Messages() {
			red.Fprintln(w, msg)
		}
		return
	}
	red.Fprintln(w, "leaves aborted!")
	fmt.Fprintln(w, err)
}
