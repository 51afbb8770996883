// Package packer implements the Timeline Packer (§4.3): it places an
// already-ordered list of admissible tasks end-to-end into a working
// window, skipping any that will not fit.
package packer

import "time"

// Placement is the packer's per-task result.
type Placement struct {
	Start time.Time
	End   time.Time
}

// Pack places tasks (in the given order — dependency- and policy-ordered
// by the caller) into [windowStart, windowEnd). It returns, for each input
// index, the Placement if the task was placed or nil if it was skipped
// because it would not fit. Order and length of the returned slice match
// the input.
//
// Algorithm (§4.3): cursor starts at windowStart; each task in order is
// assigned [cursor, cursor+duration) and the cursor advances to the end of
// the interval if cursor+duration <= windowEnd, otherwise the task is
// skipped and the cursor does not move.
func Pack(windowStart, windowEnd time.Time, durations []time.Duration) []*Placement {
	out := make([]*Placement, len(durations))
	if !windowStart.Before(windowEnd) {
		return out // zero-length (or inverted) window: nothing placed
	}

	cursor := windowStart
	for i, d := range durations {
		end := cursor.Add(d)
		if end.After(windowEnd) {
			continue // does not fit; retains nil placement, cursor unchanged
		}
		out[i] = &Placement{Start: cursor, End: end}
		cursor = end
	}
	return out
}
