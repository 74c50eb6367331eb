package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces diary entry identifiers. Implementations must be safe
// for concurrent use.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs. It is the default strategy.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// ClockGenerator issues decimal nanosecond timestamps. Two calls within the
// same clock tick (or across a clock step backwards) still get distinct,
// strictly increasing values.
type ClockGenerator struct {
	now func() time.Time

	mu   sync.Mutex
	last int64
}

// NewClockGenerator returns a ClockGenerator reading now. Pass nil for time.Now.
func NewClockGenerator(now func() time.Time) *ClockGenerator {
	if now == nil {
		now = time.Now
	}
	return &ClockGenerator{now: now}
}

// NewID returns the current time in nanoseconds, bumped past the last issued value.
func (g *ClockGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}

// SequenceGenerator issues prefix1, prefix2, ... and is meant for tests that
// assert on identifiers.
type SequenceGenerator struct {
	prefix string

	mu   sync.Mutex
	next int
}

// NewSequenceGenerator returns a SequenceGenerator starting at 1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// NewID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.prefix + strconv.Itoa(g.next)
	g.next++
	return id
}
