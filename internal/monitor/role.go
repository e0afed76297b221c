package monitor

import (
	"fmt"
	"strings"
)

// Role gates which facets and columns a viewer sees. It never changes
// filtering or sorting semantics.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClinic Role = "clinic"
)

// Column names a table column.
type Column string

const (
	ColumnSelect    Column = "select"
	ColumnPatient   Column = "patient"
	ColumnClinic    Column = "clinic"
	ColumnStatus    Column = "status"
	ColumnSentiment Column = "sentiment"
	ColumnMessage   Column = "last_message"
	ColumnCompanion Column = "companion"
	ColumnCount     Column = "messages"
	ColumnTimestamp Column = "timestamp"
)

// ParseRole resolves a role name.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleClinic:
		return RoleClinic, nil
	default:
		return "", fmt.Errorf("invalid role %q (expected admin or clinic)", raw)
	}
}

// Facets returns the facets exposed to the role.
func (r Role) Facets() []Facet {
	out := make([]Facet, 0, len(Facets))
	for _, f := range Facets {
		if f == FacetClinic && r != RoleAdmin {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Columns returns the table columns exposed to the role.
func (r Role) Columns() []Column {
	cols := []Column{ColumnSelect, ColumnPatient}
	if r == RoleAdmin {
		cols = append(cols, ColumnClinic)
	}
	return append(cols, ColumnStatus, ColumnSentiment, ColumnMessage, ColumnCompanion, ColumnCount, ColumnTimestamp)
}
