/* session.go
 * Contains the signed in identity for a presentation client. A Slot holds at most one user; a Registry hands out
 * one Slot per client key (for the bot this is the Discord author id)
 */

package session

import (
	"sync"

	"nfl-playoff-picks/api/shared"
)

// Slot is a single-slot, process-local store for the signed in user
type Slot struct {
	mu   sync.RWMutex
	user *shared.User
}

// Load returns the signed in user, or false if nobody is signed in
func (s *Slot) Load() (shared.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return shared.User{}, false
	}
	return *s.user, true
}

// Save replaces the signed in user
func (s *Slot) Save(user shared.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Clear signs the user out
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Registry maps a client key to its Slot
type Registry struct {
	mu    sync.Mutex
	slots map[string]*Slot
}

func NewRegistry() *Registry {
	return &Registry{slots: make(map[string]*Slot)}
}

// For returns the Slot for key, creating an empty one on first use
func (r *Registry) For(key string) *Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[key]
	if !ok {
		slot = &Slot{}
		r.slots[key] = slot
	}
	return slot
}
