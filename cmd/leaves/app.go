package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/cgast/leaves/internal/config"
	"github.com/cgast/leaves/internal/logging"
	"github.com/cgast/leaves/pkg/binder"
	"github.com/cgast/leaves/pkg/events"
	"github.com/cgast/leaves/pkg/lookup"
	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
	"github.com/cgast/leaves/pkg/taskfile"
)

// app wires the runtime for one command invocation.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	path      string
	taskfile  taskfile.Taskfile
	recorder  *events.Recorder
	overrides *lookup.Map
	store     *lookup.Bolt
	binder    *binder.Binder
	manager   *task.Manager
}

func defaultConfigPath() string {
	return filepath.Join(".leaves", "config.yaml")
}

// newApp loads config and the taskfile and defines every task.
// Positional NAME=value arguments are treated as parameter overrides.
func newApp(opts *options, s streams, overrideArgs []string) (*app, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.color = cfg.Color
	color.NoColor = !useColor(cfg.Color, s.out)

	a := &app{
		cfg:      cfg,
		logger:   logging.New(cfg.LogLevel, cfg.LogFormat, s.err),
		recorder: events.NewRecorder(1024),
	}

	a.path, err = resolveTaskfilePath(opts.file, cfg.Taskfile)
	if err != nil {
		return nil, err
	}
	a.taskfile, err = taskfile.LoadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("load taskfile: %w", err)
	}
	if vr := taskfile.Validate(a.taskfile); !vr.Valid() {
		return nil, fmt.Errorf("taskfile %s is invalid:\n  %s", a.path, strings.Join(validationMessages(vr), "\n  "))
	}
	a.logger.Debug("taskfile loaded", "path", a.path, "tasks", len(a.taskfile.Tasks))

	overrides, err := parseOverrides(append(append([]string(nil), opts.params...), overrideArgs...))
	if err != nil {
		return nil, err
	}
	a.overrides = lookup.NewMap(overrides)

	chain := lookup.Chain{a.overrides, lookup.Env{}}
	if cfg.Store.Remember {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		namespace := cfg.Store.Namespace
		if namespace == "" {
			namespace = a.taskfile.Meta.Name
		}
		a.store, err = lookup.OpenBolt(cfg.Store.Path, namespace)
		if err != nil {
			return nil, fmt.Errorf("open answer store: %w", err)
		}
		chain = append(chain, a.store)
	}

	publisher := &logging.EventLogger{Logger: a.logger, Next: a.recorder}
	resolver := &params.Resolver{Lookup: chain, Events: publisher}
	if cfg.Prompt.Enabled {
		prompter := params.NewLinePrompter(s.in, s.out)
		prompter.Format = colorFor(color.New(color.FgCyan), cfg.Color, s.out).Sprint(cfg.Prompt.Format)
		resolver.Prompter = prompter
	}

	a.binder = binder.New(resolver)
	a.manager = task.NewManager(a.binder, task.WithEvents(publisher))

	sh := &taskfile.Shell{Dir: filepath.Dir(a.path), Stdout: s.out, Stderr: s.err}
	if err := taskfile.Build(a.taskfile, a.manager, a.binder.Decl, sh); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing answer store", "error", err)
		}
	}
}

func applyFlags(cfg *config.Config, opts *options) {
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	if opts.color != "" {
		cfg.Color = opts.color
	}
	if opts.remember {
		cfg.Store.Remember = true
	}
	if opts.noPrompt {
		cfg.Prompt.Enabled = false
	}
}

// useColor reports whether output written to w is colored under mode.
// In auto mode only terminals get color.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorFor returns c enabled or disabled for output written to w.
func colorFor(c *color.Color, mode string, w io.Writer) *color.Color {
	if useColor(mode, w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func resolveTaskfilePath(flagPath, cfgPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if cfgPath != "" {
		return cfgPath, nil
	}
	return taskfile.Find(".")
}

// splitArgs separates task names from NAME=value overrides.
func splitArgs(args []string) (tasks, overrides []string) {
	for _, arg := range args {
		if isOverride(arg) {
			overrides = append(overrides, arg)
		} else {
			tasks = append(tasks, arg)
		}
	}
	return tasks, overrides
}

func isOverride(arg string) bool {
	name, _, ok := strings.Cut(arg, "=")
	return ok && name != "" && !strings.ContainsAny(name, " \t")
}

// parseOverrides turns NAME=value pairs into a map; later pairs win.
func parseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected NAME=value)", p)
		}
		out[k] = v
	}
	return out, nil
}

// validationMessages extracts messages from a ValidationResult.
func validationMessages(vr taskfile.ValidationResult) []string {
	msgs := make([]string, len(vr.Errors))
	for i, e := range vr.Errors {
		msgs[i] = e.Error()
	}
	return msgs
}
