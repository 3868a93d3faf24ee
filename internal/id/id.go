// Package id generates time-sortable identifiers for runs and trades.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID string. Monotonic entropy keeps IDs generated within
// the same millisecond lexicographically ordered, which matters for trade
// records that share a bar timestamp.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}
