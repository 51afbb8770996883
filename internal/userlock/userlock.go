// Package userlock provides the per-user keyed mutex the Schedule Service
// and Execution Tracker use to serialize mutating operations (§5): generate,
// reset, insert_break, and execution updates for a given user must not run
// concurrently with each other, but different users never contend.
//
// Construction is lazy and reference-counted: a lock entry is created on
// first use and evicted once its last holder releases it, so the map never
// grows to hold every user that has ever touched the scheduler.
package userlock

import "sync"

type entry struct {
	mu  sync.Mutex
	ref int
}

// Registry is a map from user id to a mutex, built lazily.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for userID, creating it if necessary. The
// returned func releases it and evicts the entry if no one else is
// waiting on it.
func (r *Registry) Lock(userID string) (unlock func()) {
	r.mu.Lock()
	e, ok := r.entries[userID]
	if !ok {
		e = &entry{}
		r.entries[userID] = e
	}
	e.ref++
	r.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		r.mu.Lock()
		e.ref--
		if e.ref == 0 {
			delete(r.entries, userID)
		}
		r.mu.Unlock()
	}
}

// Size reports the number of user locks currently held or referenced; it
// exists for tests asserting the registry does not leak entries.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
