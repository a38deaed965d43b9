package present

import "slices"

// RevealState is the set of spoiler groups the reader has revealed. It is an
// immutable value: Toggle and Set return a new state and leave the receiver
// unchanged, so callers can keep it in their own UI state.
type RevealState struct {
	revealed map[int]struct{}
}

// NewRevealState returns a state with the given groups revealed.
func NewRevealState(ids ...int) RevealState {
	s := RevealState{revealed: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.revealed[id] = struct{}{}
	}
	return s
}

// IsRevealed reports whether the spoiler group id is revealed.
func (s RevealState) IsRevealed(id int) bool {
	_, ok := s.revealed[id]
	return ok
}

// Toggle returns a copy of s with group id flipped.
func (s RevealState) Toggle(id int) RevealState {
	return s.Set(id, !s.IsRevealed(id))
}

// Set returns a copy of s with group id revealed or hidden.
func (s RevealState) Set(id int, revealed bool) RevealState {
	next := RevealState{revealed: make(map[int]struct{}, len(s.revealed)+1)}
	for k := range s.revealed {
		next.revealed[k] = struct{}{}
	}
	if revealed {
		next.revealed[id] = struct{}{}
	} else {
		delete(next.revealed, id)
	}
	return next
}

// IDs returns the revealed group ids in ascending order.
func (s RevealState) IDs() []int {
	out := make([]int, 0, len(s.revealed))
	for id := range s.revealed {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
