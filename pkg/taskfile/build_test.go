package taskfile

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/cgast/leaves/pkg/binder"
	"github.com/cgast/leaves/pkg/lookup"
	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
)

func buildSample(t *testing.T, vals map[string]string, stdin string, out *bytes.Buffer) (*task.Manager, *lookup.Map) {
	t.Helper()
	tf, err := Parse([]byte(sampleTaskfile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	store := lookup.NewMap(vals)
	b := binder.New(&params.Resolver{
		Lookup:   store,
		Prompter: params.NewLinePrompter(strings.NewReader(stdin), out),
	})
	m := task.NewManager(b)
	if err := Build(tf, m, b.Decl, &Shell{Stdout: out, Stderr: out}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m, store
}

func TestBuildAttachesParams(t *testing.T) {
	m, _ := buildSample(t, nil, "", &bytes.Buffer{})

	build, _ := m.Lookup("build")
	if !build.Params.Empty() {
		t.Errorf("build picked up params: %v", build.Params.Names())
	}

	deploy, _ := m.Lookup("deploy")
	if got := deploy.Params.Names(); !slices.Equal(got, []string{"host", "port", "timeout", "user"}) {
		t.Errorf("deploy params = %v", got)
	}
	if got := deploy.Params.Aliases("port"); !slices.Equal(got, []string{"P", "PORT"}) {
		t.Errorf("deploy aliases = %v", got)
	}
	if !deploy.Params.Interactive {
		t.Error("expected deploy to prompt")
	}
	if !slices.Equal(deploy.Prereqs, []string{"build"}) {
		t.Errorf("deploy prereqs = %v", deploy.Prereqs)
	}
}

func TestBuildRunsScriptsWithArgs(t *testing.T) {
	var out bytes.Buffer
	m, _ := buildSample(t, map[string]string{"host": "example.com", "P": "1", "PORT": "2"}, "", &out)

	if err := m.Invoke(context.Background(), "deploy"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := out.String(); got != "building\nexample.com:2\n" {
		t.Errorf("unexpected output %q", got)
	}

	deploy, _ := m.Lookup("deploy")
	if deploy.Args()["timeout"] != "30" {
		t.Errorf("expected default timeout, got %v", deploy.Args())
	}
}

func TestBuildPromptsForMissing(t *testing.T) {
	var out bytes.Buffer
	m, store := buildSample(t, map[string]string{"host": "h"}, "8080\n", &out)

	if err := m.Invoke(context.Background(), "deploy"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !strings.HasPrefix(out.String(), "deploy requires port: ") {
		t.Errorf("expected prompt first, got %q", out.String())
	}
	if v, _ := store.Lookup("port"); v != "8080" {
		t.Errorf("expected answer stored, got %q", v)
	}
}

func TestBuildRejectsInvalidAlias(t *testing.T) {
	tf := Taskfile{Tasks: []TaskDef{{Name: "a", Params: []string{"x"}, Aliases: []AliasDef{{Alias: "Y", Param: "y"}}}}}
	b := binder.New(&params.Resolver{})
	err := Build(tf, task.NewManager(b), b.Decl, nil)

	var specErr *params.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("expected *SpecError, got %v", err)
	}
}

func TestExpand(t *testing.T) {
	args := params.Args{"host": "example.com", "port": "22"}
	tests := []struct {
		in, want string
	}{
		{"ssh {{host}} -p {{ port }}", "ssh example.com -p 22"},
		{"echo {{unknown}}", "echo {{unknown}}"},
		{"no placeholders", "no placeholders"},
	}
	for _, tt := range tests {
		if got := Expand(tt.in, args); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShellExportsArgs(t *testing.T) {
	var out bytes.Buffer
	sh := &Shell{Stdout: &out, Stderr: &out}
	action := sh.Action(`printf '%s' "$region"`)

	if err := action(context.Background(), &task.Task{Name: "t"}, params.Args{"region": "eu"}); err != nil {
		t.Fatalf("action: %v", err)
	}
	if out.String() != "eu" {
		t.Errorf("expected eu, got %q", out.String())
	}
}

func TestShellFailure(t *testing.T) {
	sh := &Shell{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := sh.Action("exit 3")(context.Background(), &task.Task{Name: "t"}, nil); err == nil {
		t.Error("expected error from failing script")
	}
}
