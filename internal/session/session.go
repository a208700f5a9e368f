// Package session models navigation between search results and the card
// detail view as an explicit value, rather than process-global state.
package session

// View names the screen the user is on.
type View string

const (
	ViewResults View = "results"
	ViewDetail  View = "detail"
)

// State is the complete navigation state. It is passed into and out of
// every transition; nothing here is shared or mutated in place.
type State struct {
	View           View
	SelectedCardID string
	// history holds previously selected card IDs, most recent last, so
	// Back can walk a related-cards chain in reverse.
	history []string
}

// NewState starts at the results view with nothing selected.
func NewState() State {
	return State{View: ViewResults}
}

// Select moves to the detail view for cardID, pushing any current
// selection onto the history.
func (s State) Select(cardID string) State {
	next := s
	if s.View == ViewDetail && s.SelectedCardID != "" {
		next.history = append(append([]string(nil), s.history...), s.SelectedCardID)
	}
	next.View = ViewDetail
	next.SelectedCardID = cardID
	return next
}

// Back returns to the previous selection, or to the results view when
// the history is empty. On a fresh state it is a no-op.
func (s State) Back() State {
	next := s
	if len(s.history) > 0 {
		next.SelectedCardID = s.history[len(s.history)-1]
		next.history = append([]string(nil), s.history[:len(s.history)-1]...)
		return next
	}
	next.View = ViewResults
	next.SelectedCardID = ""
	next.history = nil
	return next
}

// Depth reports how many selections Back can unwind before reaching the
// results view.
func (s State) Depth() int {
	if s.View == ViewDetail && s.SelectedCardID != "" {
		return len(s.history) + 1
	}
	return 0
}
