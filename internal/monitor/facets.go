// Package monitor derives filtered, sorted and selected views of a fixed
// conversation collection.
package monitor

import (
	"strings"

	"github.com/tOgg1/carewatch/internal/models"
)

// All is the facet value that imposes no constraint.
const All = "all"

// Facet names a filterable conversation attribute.
type Facet string

const (
	FacetClinic    Facet = "clinic"
	FacetStatus    Facet = "status"
	FacetPatient   Facet = "patient"
	FacetProtocol  Facet = "protocol"
	FacetCompanion Facet = "companion"
)

// Facets lists every facet in panel order.
var Facets = []Facet{FacetClinic, FacetStatus, FacetPatient, FacetProtocol, FacetCompanion}

// Label is the human readable facet name.
func (f Facet) Label() string {
	switch f {
	case FacetClinic:
		return "Clinic"
	case FacetStatus:
		return "Status"
	case FacetPatient:
		return "Patient"
	case FacetProtocol:
		return "Protocol"
	case FacetCompanion:
		return "Companion"
	default:
		return string(f)
	}
}

// Key returns the value used both to build options and to match a
// selection. Clinics are keyed by their stable id. ok is false when the
// field is absent.
func (f Facet) Key(c models.Conversation) (string, bool) {
	var key string
	switch f {
	case FacetClinic:
		if c.Clinic == nil {
			return "", false
		}
		key = c.Clinic.ID
	case FacetStatus:
		key = string(c.Status)
	case FacetPatient:
		key = c.PatientName
	case FacetProtocol:
		key = c.ProtocolName()
	case FacetCompanion:
		key = c.CompanionName()
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}

// Option is one selectable facet value.
type Option struct {
	Value string
	Label string
}

// Options returns the distinct values of a facet across items in first-seen
// order. Status options are the closed enumeration.
func Options(items []models.Conversation, facet Facet) []Option {
	if facet == FacetStatus {
		out := make([]Option, 0, len(models.Statuses))
		for _, status := range models.Statuses {
			out = append(out, Option{Value: string(status), Label: string(status)})
		}
		return out
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]Option, 0, len(items))
	for _, item := range items {
		key, ok := facet.Key(item)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		label := key
		if facet == FacetClinic && strings.TrimSpace(item.Clinic.Name) != "" {
			label = strings.TrimSpace(item.Clinic.Name)
		}
		out = append(out, Option{Value: key, Label: label})
	}
	if facet == FacetClinic {
		disambiguateLabels(out)
	}
	return out
}

// OptionLabel resolves the label for value, falling back to the value.
func OptionLabel(options []Option, value string) string {
	if isAll(value) {
		return "All"
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// NextOption cycles All -> first option -> ... -> last option -> All.
func NextOption(options []Option, current string) string {
	if len(options) == 0 {
		return All
	}
	if isAll(current) {
		return options[0].Value
	}
	for i, opt := range options {
		if opt.Value != current {
			continue
		}
		if i == len(options)-1 {
			return All
		}
		return options[i+1].Value
	}
	return All
}

// PrevOption cycles in the opposite direction of NextOption.
func PrevOption(options []Option, current string) string {
	if len(options) == 0 {
		return All
	}
	if isAll(current) {
		return options[len(options)-1].Value
	}
	for i, opt := range options {
		if opt.Value != current {
			continue
		}
		if i == 0 {
			return All
		}
		return options[i-1].Value
	}
	return All
}

func disambiguateLabels(options []Option) {
	counts := make(map[string]int, len(options))
	for _, opt := range options {
		counts[opt.Label]++
	}
	for i := range options {
		if counts[options[i].Label] > 1 {
			options[i].Label = options[i].Label + " (" + options[i].Value + ")"
		}
	}
}

func isAll(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, All)
}
