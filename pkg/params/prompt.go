package params

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// LinePrompter writes a question to Out and reads the answer line by line.
// Create it with NewLinePrompter.
type LinePrompter struct {
	Out io.Writer

	// Format renders the question; it receives the task and parameter
	// names. Defaults to "%s requires %s: ".
	Format string

	mu sync.Mutex
	in *bufio.Reader
}

// NewLinePrompter returns a prompter reading from in and writing to out.
// A nil in makes every prompt fail with ErrNoInput.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{Out: out}
	if in != nil {
		p.in = bufio.NewReader(in)
	}
	return p
}

// Prompt writes the question and returns the trimmed answer. It blocks until
// a line is available; there is no timeout.
func (p *LinePrompter) Prompt(_ context.Context, task, param string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.in == nil {
		return "", ErrNoInput
	}
	format := p.Format
	if format == "" {
		format = "%s requires %s: "
	}
	if _, err := fmt.Fprintf(p.Out, format, task, param); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
