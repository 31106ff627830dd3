// Package ids issues time-derived identifiers.
package ids

import (
	"strconv"
	"sync"
	"time"
)

// Generator returns the current Unix time in milliseconds as a decimal
// string. Two calls within the same millisecond still get distinct,
// increasing values.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}
