package storage

import "sync"

type pair struct {
	userID  int64
	matchID int64
}

// Notified records the (user, match) pairs that already received an
// alert, so a match stays silent for its whole run once announced.
// Entries are never evicted; the process restarts periodically in
// deployment, which bounds growth in practice.
type Notified struct {
	mu   sync.Mutex
	seen map[pair]struct{}
}

// NewNotified creates an empty notified-pair set
func NewNotified() *Notified {
	return &Notified{
		seen: make(map[pair]struct{}),
	}
}

// Has reports whether an alert for this pair was already delivered
func (n *Notified) Has(userID, matchID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.seen[pair{userID: userID, matchID: matchID}]
	return ok
}

// Mark records a delivered alert. Marking the same pair again is a no-op.
func (n *Notified) Mark(userID, matchID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen[pair{userID: userID, matchID: matchID}] = struct{}{}
}

// Len returns the number of recorded pairs
func (n *Notified) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.seen)
}
