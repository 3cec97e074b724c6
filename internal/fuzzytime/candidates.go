package fuzzytime

import (
	"sync"
	"time"
)

// Candidates is an ordered list of templates with move-to-front promotion.
// The template that last parsed successfully is tried first on the next call.
//
// A Candidates value is safe for concurrent use; the whole trial loop runs
// under the lock so promotion never interleaves with another caller's scan.
type Candidates struct {
	mu        sync.Mutex
	templates []Template
}

// NewCandidates copies seed into a new list.
func NewCandidates(seed []Template) *Candidates {
	templates := make([]Template, len(seed))
	copy(templates, seed)
	return &Candidates{templates: templates}
}

// Templates returns a snapshot of the current order.
func (c *Candidates) Templates() []Template {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Match tries each template in order with parse and returns the first
// successful result. The winning template moves to index 0; the others keep
// their relative order.
func (c *Candidates) Match(value string, parse func(layout, value string) (time.Time, bool)) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, tmpl := range c.templates {
		t, ok := parse(tmpl.Layout, value)
		if !ok {
			continue
		}
		c.promote(i)
		return t, true
	}
	return time.Time{}, false
}

func (c *Candidates) promote(i int) {
	if i == 0 {
		return
	}
	winner := c.templates[i]
	copy(c.templates[1:i+1], c.templates[:i])
	c.templates[0] = winner
}
