// Package id generates the opaque identifiers used for tasks and reports:
// 128-bit ULIDs, lexicographically sortable by creation time, with a
// canonical Crockford base32 string form (§4.6).
package id

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropy is a monotonic ULID entropy source guarded by a mutex; ULID's
// monotonic reader is not safe for concurrent use on its own.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// ID is the canonical string form of an identifier: 26 characters,
// Crockford base32, lexicographically comparable.
type ID string

// New generates a new ID timestamped at t.
func New(t time.Time) ID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// String returns the canonical form.
func (i ID) String() string { return string(i) }

// Valid reports whether s parses as a well-formed ULID string.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(s))
	return err == nil
}
