package monitor

import (
	"strings"

	"github.com/tOgg1/carewatch/internal/models"
)

// SearchScope selects which text fields the search string is matched against.
type SearchScope int

const (
	// ScopePatient searches the patient name only.
	ScopePatient SearchScope = iota
	// ScopeContact searches patient name, email and last message.
	ScopeContact
)

// Criteria is the filter selection of one view. Empty facet values and All
// impose no constraint.
type Criteria struct {
	Search string
	Scope  SearchScope

	Clinic    string
	Status    string
	Patient   string
	Protocol  string
	Companion string
}

// Value returns the selection for a facet, normalized to All when unset.
func (c Criteria) Value(f Facet) string {
	var v string
	switch f {
	case FacetClinic:
		v = c.Clinic
	case FacetStatus:
		v = c.Status
	case FacetPatient:
		v = c.Patient
	case FacetProtocol:
		v = c.Protocol
	case FacetCompanion:
		v = c.Companion
	}
	if isAll(v) {
		return All
	}
	return strings.TrimSpace(v)
}

// Set updates the selection for a facet.
func (c *Criteria) Set(f Facet, value string) {
	if isAll(value) {
		value = All
	}
	switch f {
	case FacetClinic:
		c.Clinic = value
	case FacetStatus:
		c.Status = value
	case FacetPatient:
		c.Patient = value
	case FacetProtocol:
		c.Protocol = value
	case FacetCompanion:
		c.Companion = value
	}
}

// Active counts the constraints currently in effect.
func (c Criteria) Active() int {
	n := 0
	if c.Search != "" {
		n++
	}
	for _, f := range Facets {
		if c.Value(f) != All {
			n++
		}
	}
	return n
}

// Reset clears the search string and every facet, keeping the scope.
func (c *Criteria) Reset() {
	*c = Criteria{Scope: c.Scope}
}

// Matches reports whether a conversation satisfies every active constraint.
func (c Criteria) Matches(item models.Conversation) bool {
	if !c.matchesSearch(item) {
		return false
	}
	for _, f := range Facets {
		want := c.Value(f)
		if want == All {
			continue
		}
		got, ok := f.Key(item)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (c Criteria) matchesSearch(item models.Conversation) bool {
	needle := strings.ToLower(c.Search)
	if needle == "" {
		return true
	}
	fields := []string{item.PatientName}
	if c.Scope == ScopeContact {
		fields = append(fields, item.Email, item.LastMessage)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the matching items in their original relative order. The
// input slice is not modified.
func Filter(items []models.Conversation, criteria Criteria) []models.Conversation {
	if len(items) == 0 {
		return nil
	}
	filtered := make([]models.Conversation, 0, len(items))
	for i := range items {
		if criteria.Matches(items[i]) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}
