package monitor

import "github.com/tOgg1/carewatch/internal/models"

// InboxState is the state owned by one list/detail/profile screen.
type InboxState struct {
	Criteria Criteria
	Nav      *Navigator
}

// NewInboxState searches patient names only.
func NewInboxState() *InboxState {
	return &InboxState{
		Criteria: Criteria{Scope: ScopePatient},
		Nav:      NewNavigator(),
	}
}

// Visible returns the filtered list in collection order.
func (s *InboxState) Visible(all []models.Conversation) []models.Conversation {
	return Filter(all, s.Criteria)
}

// TableState is the state owned by one conversation table.
type TableState struct {
	Criteria Criteria
	Order    SortOrder
	Checked  *Selection

	// OnView hands a conversation to the host for display.
	OnView func(id string)
}

// NewTableState searches name, email and last message.
func NewTableState(onView func(id string)) *TableState {
	return &TableState{
		Criteria: Criteria{Scope: ScopeContact},
		Checked:  NewSelection(),
		OnView:   onView,
	}
}

// Rows filters then sorts.
func (s *TableState) Rows(all []models.Conversation) []models.Conversation {
	filtered := Filter(all, s.Criteria)
	if s.Order == SortNone {
		return filtered
	}
	return SortByTimestamp(filtered, s.Order)
}

// CycleSort advances the timestamp sort.
func (s *TableState) CycleSort() SortOrder {
	s.Order = s.Order.Next()
	return s.Order
}

// View forwards id to the host callback.
func (s *TableState) View(id string) {
	if s.OnView == nil || id == "" {
		return
	}
	s.OnView(id)
}
