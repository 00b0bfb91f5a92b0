package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// defaultTask is invoked when no task is named.
const defaultTask = "default"

// runTasks implements `leaves [run] [TASK...] [NAME=value...]`.
func runTasks(ctx context.Context, opts *options, s streams, args []string) error {
	names, overrides := splitArgs(args)
	if len(names) == 0 {
		names = []string{defaultTask}
	}

	a, err := newApp(opts, s, overrides)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.trace {
		start := time.Now()
		defer func() {
			printTrace(s.err, colorFor(color.New(color.Bold), opts.color, s.err), a.recorder, start)
		}()
	}

	for _, name := range names {
		a.logger.Info("invoking task", "task", name)
		if err := a.manager.Invoke(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// describeTask renders a one-line summary used by list.
func describeTask(name, description string, paramNames []string) string {
	line := name
	if len(paramNames) > 0 {
		line = fmt.Sprintf("%s %v", name, paramNames)
	}
	if description != "" {
		line = fmt.Sprintf("%-30s # %s", line, description)
	}
	return line
}
