// Package idgen generates record identifiers for users and tasks.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Schemes.
const (
	SchemeTimestamp = "timestamp"
	SchemeUUID      = "uuid"
)

// Generator returns a new unique id on each call.
type Generator interface {
	NewID() string
}

// New returns the generator for scheme. An empty scheme means timestamp.
func New(scheme string) (Generator, error) {
	switch strings.ToLower(scheme) {
	case "", SchemeTimestamp:
		return NewTimestamp(time.Now), nil
	case SchemeUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}

// Timestamp yields the current Unix time in milliseconds as a decimal
// string. Two calls in the same millisecond get consecutive values, so ids
// stay unique and increasing within a process.
type Timestamp struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewTimestamp(now func() time.Time) *Timestamp {
	return &Timestamp{now: now}
}

func (g *Timestamp) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUID yields random (v4) UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}
