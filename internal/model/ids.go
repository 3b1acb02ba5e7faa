package model

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces unique ids for prototypes, steps, elements and
// options. Injected rather than called ambiently so tests can assert on
// deterministic ids.
type IDGenerator interface {
	NextID() string
}

// Clock abstracts the ambient clock for the same reason.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string {
	return uuid.New().String()
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
