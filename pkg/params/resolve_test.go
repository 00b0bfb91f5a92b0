package params

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

func TestResolveKeysAreRequiredAndOptional(t *testing.T) {
	spec := NewDeclaration().
		Required("a", "b").
		Optional(Default("c", "3"), Default("d", "")).
		Drain()

	r := &Resolver{Lookup: newMapLookup(map[string]string{"a": "1", "b": "2"})}
	args, err := r.Resolve(context.Background(), "t", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got := args.Names(); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("unexpected keys %v", got)
	}
	if args["c"] != "3" || args["d"] != "" {
		t.Errorf("unexpected optional values %v", args)
	}
}

func TestResolveAliasPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		lookup map[string]string
		want   string
	}{
		{"last alias wins", map[string]string{"P": "1", "PORT": "2", "port": "3"}, "2"},
		{"earlier alias fills gap", map[string]string{"P": "1", "port": "3"}, "1"},
		{"empty alias skipped", map[string]string{"P": "1", "PORT": ""}, "1"},
		{"direct lookup", map[string]string{"port": "3"}, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewDeclaration().Required("port").Alias("P", "port").Alias("PORT", "port").Drain()
			r := &Resolver{Lookup: newMapLookup(tt.lookup)}
			args, err := r.Resolve(context.Background(), "serve", spec)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if args["port"] != tt.want {
				t.Errorf("expected port=%q, got %q", tt.want, args["port"])
			}
		})
	}
}

func TestResolveDefaultFallback(t *testing.T) {
	spec := NewDeclaration().Optional(Default("timeout", "30")).Drain()

	r := &Resolver{Lookup: newMapLookup(nil)}
	args, err := r.Resolve(context.Background(), "t", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if args["timeout"] != "30" {
		t.Errorf("expected default 30, got %q", args["timeout"])
	}

	r.Lookup = newMapLookup(map[string]string{"timeout": "5"})
	args, err = r.Resolve(context.Background(), "t", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if args["timeout"] != "5" {
		t.Errorf("expected lookup value 5, got %q", args["timeout"])
	}
}

func TestResolveCollectsMissing(t *testing.T) {
	spec := NewDeclaration().Required("a", "b").Optional(Default("c", "")).Drain()
	events := &recordingPublisher{}

	r := &Resolver{Lookup: newMapLookup(nil), Events: events}
	args, err := r.Resolve(context.Background(), "deploy", spec)
	if args != nil {
		t.Errorf("expected no partial args, got %v", args)
	}
	if !errors.Is(err, ErrMissingParams) {
		t.Fatalf("expected ErrMissingParams, got %v", err)
	}

	var missing *MissingParamsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingParamsError, got %T", err)
	}
	if missing.Task != "deploy" {
		t.Errorf("expected task deploy, got %q", missing.Task)
	}
	want := "Missing argument 'a'\nMissing argument 'b'"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if strings.Contains(err.Error(), "'c'") {
		t.Error("optional parameter reported as missing")
	}
	if !slices.Equal(events.types, []string{"params.missing"}) {
		t.Errorf("unexpected events %v", events.types)
	}
}

func TestResolveInteractive(t *testing.T) {
	spec := NewDeclaration().Required("a").Interactive().Drain()
	lookup := newMapLookup(nil)
	prompter := &stubPrompter{answers: map[string]string{"a": "x"}}

	r := &Resolver{Lookup: lookup, Prompter: prompter}
	args, err := r.Resolve(context.Background(), "build", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if args["a"] != "x" {
		t.Errorf("expected a=x, got %q", args["a"])
	}
	if v, _ := lookup.Lookup("a"); v != "x" {
		t.Errorf("expected lookup write-back, got %q", v)
	}
	if !slices.Equal(prompter.calls, []string{"build/a"}) {
		t.Errorf("unexpected prompts %v", prompter.calls)
	}
}

func TestResolveDoesNotPromptWhenNotInteractive(t *testing.T) {
	spec := NewDeclaration().Required("a").Drain()
	prompter := &stubPrompter{answers: map[string]string{"a": "x"}}

	r := &Resolver{Lookup: newMapLookup(nil), Prompter: prompter}
	if _, err := r.Resolve(context.Background(), "t", spec); !errors.Is(err, ErrMissingParams) {
		t.Fatalf("expected ErrMissingParams, got %v", err)
	}
	if len(prompter.calls) != 0 {
		t.Errorf("prompter called: %v", prompter.calls)
	}
}

func TestResolveNoAliasesDeclared(t *testing.T) {
	spec := NewDeclaration().Required("name").Drain()
	r := &Resolver{Lookup: newMapLookup(map[string]string{"name": "leaves"})}
	args, err := r.Resolve(context.Background(), "t", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if args["name"] != "leaves" {
		t.Errorf("expected leaves, got %q", args["name"])
	}
}

func TestResolveBlankAnswerStaysMissing(t *testing.T) {
	spec := NewDeclaration().Required("a", "b").Interactive().Drain()
	lookup := newMapLookup(nil)
	prompter := &stubPrompter{answers: map[string]string{"a": "   ", "b": "ok"}}

	r := &Resolver{Lookup: lookup, Prompter: prompter}
	_, err := r.Resolve(context.Background(), "build", spec)

	var missing *MissingParamsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParamsError, got %v", err)
	}
	if !slices.Equal(missing.Names, []string{"a"}) {
		t.Errorf("expected only a missing, got %v", missing.Names)
	}
	if _, ok := lookup.Lookup("a"); ok {
		t.Error("blank answer written back to lookup")
	}
}

func TestResolveBlankLineFromPrompter(t *testing.T) {
	spec := NewDeclaration().Required("a").Interactive().Drain()
	r := &Resolver{
		Lookup:   newMapLookup(nil),
		Prompter: NewLinePrompter(strings.NewReader("   \n"), io.Discard),
	}

	args, err := r.Resolve(context.Background(), "build", spec)
	if !errors.Is(err, ErrMissingParams) {
		t.Fatalf("expected ErrMissingParams, got args=%v err=%v", args, err)
	}
	if err.Error() != "Missing argument 'a'" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
