package service

import "github.com/telemock/callsim/internal/core/domain"

// CallRegistry is the set of live (active, ringing, dialing) call ids and
// the source of truth for "is any call active". Not safe for concurrent
// use on its own; the engine serializes access together with the audio
// cue.
type CallRegistry struct {
	live map[domain.CallID]struct{}
}

func NewCallRegistry() *CallRegistry {
	return &CallRegistry{live: make(map[domain.CallID]struct{})}
}

// Add inserts id into the live set. Adding an id that is already live is
// a no-op.
func (r *CallRegistry) Add(id domain.CallID) {
	r.live[id] = struct{}{}
}

// Remove deletes id from the live set. Removing a missing id is a no-op.
func (r *CallRegistry) Remove(id domain.CallID) {
	delete(r.live, id)
}

func (r *CallRegistry) Contains(id domain.CallID) bool {
	_, ok := r.live[id]
	return ok
}

func (r *CallRegistry) IsEmpty() bool {
	return len(r.live) == 0
}

func (r *CallRegistry) Len() int {
	return len(r.live)
}
