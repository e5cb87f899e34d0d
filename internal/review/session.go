package review

import (
	"fmt"

	"snapforge/internal/snap"
)

// Decision is the reviewer's verdict on one pending artifact.
type Decision uint8

const (
	// DecisionAccept promotes the artifact's new body into the accepted
	// snapshot and removes the artifact.
	DecisionAccept Decision = iota
	// DecisionReject removes the artifact without promotion.
	DecisionReject
	// DecisionSkip leaves the artifact untouched for a later session.
	DecisionSkip
)

// String returns a stable lower-case name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	case DecisionSkip:
		return "skip"
	default:
		return fmt.Sprintf("decision(%d)", uint8(d))
	}
}

// Counts tallies the decisions a session has applied.
type Counts struct {
	Accepted int
	Rejected int
	Skipped  int
}

// Session drives one review pass over a fixed enumeration. Decisions apply
// immediately; there is no batching and no rollback across items.
type Session struct {
	store  *snap.Store
	items  []*Item
	pos    int
	counts Counts
}

// NewSession starts a session over the enumerated items.
func NewSession(items []*Item) *Session {
	return &Session{store: &snap.Store{}, items: items}
}

// Next returns the item under review, or nil when the session is done.
// The same item is returned until Decide advances past it.
func (s *Session) Next() *Item {
	if s.pos >= len(s.items) {
		return nil
	}
	return s.items[s.pos]
}

// Remaining reports how many items are still undecided, including the
// current one.
func (s *Session) Remaining() int {
	return len(s.items) - s.pos
}

// Position returns the 1-based index of the current item and the total.
func (s *Session) Position() (current, total int) {
	cur := s.pos + 1
	if cur > len(s.items) {
		cur = len(s.items)
	}
	return cur, len(s.items)
}

// Done reports whether the enumeration is exhausted.
func (s *Session) Done() bool { return s.pos >= len(s.items) }

// Counts returns the decision tally so far.
func (s *Session) Counts() Counts { return s.counts }

// Decide applies d to the current item and advances. Accept and reject are
// final on return; a missing artifact surfaces as snap.ErrUnknownPending.
func (s *Session) Decide(d Decision) error {
	item := s.Next()
	if item == nil {
		return fmt.Errorf("review: no item under review")
	}
	switch d {
	case DecisionAccept:
		if err := snap.Promote(s.store, item.Pending); err != nil {
			return err
		}
		s.counts.Accepted++
	case DecisionReject:
		if err := snap.RemovePending(item.Path); err != nil {
			return err
		}
		s.counts.Rejected++
	case DecisionSkip:
		s.counts.Skipped++
	default:
		return fmt.Errorf("review: unknown decision %d", uint8(d))
	}
	s.pos++
	return nil
}
