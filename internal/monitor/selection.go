package monitor

import (
	"strings"

	"github.com/tOgg1/carewatch/internal/models"
)

// Selection is the set of checked conversation ids in a table. It is
// independent of filter and sort state.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll selects every id of the full collection when checked, otherwise
// clears the set. The filtered subset is deliberately not consulted.
func (s *Selection) ToggleAll(checked bool, all []models.Conversation) {
	s.ids = make(map[string]struct{}, len(all))
	if !checked {
		return
	}
	for _, item := range all {
		if id := strings.TrimSpace(item.ID); id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// Contains reports membership.
func (s *Selection) Contains(id string) bool {
	if s == nil || s.ids == nil {
		return false
	}
	_, ok := s.ids[strings.TrimSpace(id)]
	return ok
}

// Len is the number of checked ids.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// AllSelected reflects the header checkbox: true when the number of checked
// ids equals the size of the full collection.
func (s *Selection) AllSelected(all []models.Conversation) bool {
	return len(all) > 0 && s.Len() == len(all)
}
