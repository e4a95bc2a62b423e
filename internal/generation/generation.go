// Package generation tags asynchronous loads so that a completion arriving
// after a newer load has started can be recognised and dropped.
package generation

import "sync/atomic"

type Token uint64

type Counter struct {
	n atomic.Uint64
}

// Begin starts a new load and invalidates every earlier token.
func (c *Counter) Begin() Token {
	return Token(c.n.Add(1))
}

// Invalidate drops every outstanding token, e.g. when a screen goes away.
func (c *Counter) Invalidate() {
	c.n.Add(1)
}

func (c *Counter) IsCurrent(t Token) bool {
	return c.n.Load() == uint64(t)
}
