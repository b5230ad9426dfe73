// Package storage holds the bot's in-process state: user subscriptions
// and the set of already-delivered alerts. Nothing here survives a
// restart; that is a deployment assumption, not an oversight.
package storage

import (
	"sync"

	"github.com/01HARE01/botcurs/internal/game"
)

// Subscription pairs a chat with the game it follows
type Subscription struct {
	UserID  int64
	GameKey game.Key
}

// Subscriptions maps each user to their single subscribed game. Safe for
// concurrent use by the command handlers (writers) and the polling loop
// (reader); last write wins.
type Subscriptions struct {
	mu   sync.RWMutex
	byID map[int64]game.Key
}

// NewSubscriptions creates an empty subscription store
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{
		byID: make(map[int64]game.Key),
	}
}

// Set subscribes a user to a game, replacing any prior subscription
func (s *Subscriptions) Set(userID int64, key game.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[userID] = key
}

// Remove drops a user's subscription and reports whether one existed
func (s *Subscriptions) Remove(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byID[userID]
	delete(s.byID, userID)
	return ok
}

// Get returns the user's subscribed game, if any
func (s *Subscriptions) Get(userID int64) (game.Key, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byID[userID]
	return key, ok
}

// All returns a snapshot of every active subscription. The snapshot can
// be iterated while handlers keep mutating the store.
func (s *Subscriptions) All() []Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]Subscription, 0, len(s.byID))
	for userID, key := range s.byID {
		subs = append(subs, Subscription{UserID: userID, GameKey: key})
	}
	return subs
}

// Len returns the number of active subscriptions
func (s *Subscriptions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
