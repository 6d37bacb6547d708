// Package id generates identifiers for in-flight bundle requests.
//
// IDs are prefixed ULIDs ("req_01J..."), so they sort by creation time and
// stay readable in logs. Two loads of the same bundle get different IDs,
// which is how callers tell concurrent requests apart.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies one bundle load
type RequestID string

// RequestPrefix is prepended to every RequestID
const RequestPrefix = "req"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id RequestID) String() string { return string(id) }

// Timestamp returns when the request ID was generated.
func (id RequestID) Timestamp() (time.Time, error) {
	raw, ok := strings.CutPrefix(string(id), RequestPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("request id %q: missing %s_ prefix", id, RequestPrefix)
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("request id %q: %w", id, err)
	}
	return ulid.Time(parsed.Time()), nil
}
