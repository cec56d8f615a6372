// Package store holds the client-local, process-lifetime state shared
// between views: the refresh token that broadcasts "the authority changed"
// and the fetch sequencers that keep stale responses from landing. Nothing
// here survives a restart; the authority is the only persistent store.
package store

// Token is a monotonically increasing refresh counter. It is bumped exactly
// once per confirmed mutation (booking created, booking cancelled, seats
// swapped) and carries no payload: readers compare the value they last saw
// and re-fetch unconditionally on mismatch. The magnitude is meaningless,
// only transitions matter.
//
// All access happens on the single logical thread of the TUI update loop,
// so no locking is needed.
type Token struct {
	value uint64
}

// Bump records a confirmed mutation and returns the new value.
func (t *Token) Bump() uint64 {
	t.value++
	return t.value
}

func (t *Token) Value() uint64 {
	return t.value
}

// ChangedSince reports whether any mutation was confirmed after the given
// observation.
func (t *Token) ChangedSince(seen uint64) bool {
	return t.value != seen
}

// Sequencer orders the fetches of a single view. Each new fetch takes the
// next sequence number; a response tagged with an older number than the
// latest issued one belongs to a superseded fetch and must be dropped, so
// an out-of-order slow response can never overwrite a newer snapshot.
type Sequencer struct {
	issued uint64
}

// Next issues a sequence number for a new fetch, superseding all prior
// in-flight fetches of this view.
func (s *Sequencer) Next() uint64 {
	s.issued++
	return s.issued
}

// Obsolete reports whether a response with the given sequence number was
// superseded by a newer fetch.
func (s *Sequencer) Obsolete(seq uint64) bool {
	return seq != s.issued
}
