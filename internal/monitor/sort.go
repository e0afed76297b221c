package monitor

import (
	"slices"

	"github.com/tOgg1/carewatch/internal/models"
)

// SortOrder is the three-state timestamp sort of the table.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortDesc
	SortAsc
)

// Next advances none -> desc -> asc -> none.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortNone:
		return SortDesc
	case SortDesc:
		return SortAsc
	default:
		return SortNone
	}
}

func (o SortOrder) String() string {
	switch o {
	case SortDesc:
		return "desc"
	case SortAsc:
		return "asc"
	default:
		return "none"
	}
}

// Indicator is the column header glyph for the order.
func (o SortOrder) Indicator() string {
	switch o {
	case SortDesc:
		return "↓"
	case SortAsc:
		return "↑"
	default:
		return "↕"
	}
}

// ParseSortOrder accepts none, desc and asc.
func ParseSortOrder(raw string) (SortOrder, bool) {
	switch raw {
	case "", "none":
		return SortNone, true
	case "desc":
		return SortDesc, true
	case "asc":
		return SortAsc, true
	default:
		return SortNone, false
	}
}

// SortByTimestamp returns a copy of items ordered by timestamp. The sort is
// stable, so equal timestamps keep their input order. Unknown (zero)
// timestamps are the earliest instant: last in desc, first in asc.
func SortByTimestamp(items []models.Conversation, order SortOrder) []models.Conversation {
	if len(items) == 0 {
		return nil
	}
	sorted := slices.Clone(items)
	switch order {
	case SortDesc:
		slices.SortStableFunc(sorted, func(a, b models.Conversation) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	case SortAsc:
		slices.SortStableFunc(sorted, func(a, b models.Conversation) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	}
	return sorted
}
