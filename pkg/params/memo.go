package params

import "sync"

// Memo holds the arguments of one task. The first successful computation
// wins; later calls return the cached value without recomputing.
type Memo struct {
	mu   sync.Mutex
	args Args
	done bool
}

// Get returns the cached arguments, computing them with fn if needed.
// Concurrent callers wait for the one computing. A failed computation is not
// cached.
func (m *Memo) Get(fn func() (Args, error)) (Args, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return m.args, nil
	}
	args, err := fn()
	if err != nil {
		return nil, err
	}
	m.args = args
	m.done = true
	return args, nil
}

// Value returns the cached arguments and whether resolution has happened.
func (m *Memo) Value() (Args, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.args, m.done
}
