package params

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  x \nsecond\n"), &out)

	got, err := p.Prompt(context.Background(), "deploy", "host")
	if err != nil {
		t.Fatalf("Prompt error: %v", err)
	}
	if got != "x" {
		t.Errorf("expected trimmed answer x, got %q", got)
	}
	if out.String() != "deploy requires host: " {
		t.Errorf("unexpected prompt %q", out.String())
	}

	got, err = p.Prompt(context.Background(), "deploy", "port")
	if err != nil || got != "second" {
		t.Errorf("expected second line, got %q, %v", got, err)
	}
}

func TestLinePrompterLastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("tail"), &bytes.Buffer{})
	got, err := p.Prompt(context.Background(), "t", "p")
	if err != nil || got != "tail" {
		t.Errorf("expected tail, got %q, %v", got, err)
	}
}

func TestLinePrompterEOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.Prompt(context.Background(), "t", "p"); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestResolveWithLinePrompter(t *testing.T) {
	spec := NewDeclaration().Required("a", "b").Interactive().Drain()
	lookup := newMapLookup(map[string]string{"b": "given"})
	var out bytes.Buffer

	r := &Resolver{Lookup: lookup, Prompter: NewLinePrompter(strings.NewReader("x\n"), &out)}
	args, err := r.Resolve(context.Background(), "task", spec)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if args["a"] != "x" || args["b"] != "given" {
		t.Errorf("unexpected args %v", args)
	}
	if out.String() != "task requires a: " {
		t.Errorf("expected a single prompt, got %q", out.String())
	}
}
