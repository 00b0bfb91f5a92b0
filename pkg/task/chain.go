package task

import (
	"fmt"
	"strings"
)

// callChain is the path of task names from the outermost invocation.
type callChain struct {
	name   string
	parent *callChain
}

func (c *callChain) includes(name string) bool {
	for n := c; n != nil; n = n.parent {
		if n.name == name {
			return true
		}
	}
	return false
}

// push returns the chain extended by name, failing on a cycle.
func (c *callChain) push(name string) (*callChain, error) {
	if c.includes(name) {
		return nil, fmt.Errorf("circular dependency detected: %s => %s", c, name)
	}
	return &callChain{name: name, parent: c}, nil
}

func (c *callChain) String() string {
	var names []string
	for n := c; n != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " => ")
}
