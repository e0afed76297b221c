package monitor

import "github.com/tOgg1/carewatch/internal/models"

// CountWhere counts the items satisfying pred.
func CountWhere(items []models.Conversation, pred func(models.Conversation) bool) int {
	n := 0
	for i := range items {
		if pred(items[i]) {
			n++
		}
	}
	return n
}

// CountNeedsAttention counts conversations flagged for staff.
func CountNeedsAttention(items []models.Conversation) int {
	return CountWhere(items, models.Conversation.NeedsAttention)
}

// Summary aggregates display counters for a collection.
type Summary struct {
	Total          int
	NeedsAttention int
	Active         int
	Resolved       int
	BySentiment    map[models.Sentiment]int
}

// Summarize computes a Summary in one pass.
func Summarize(items []models.Conversation) Summary {
	summary := Summary{
		Total:       len(items),
		BySentiment: make(map[models.Sentiment]int, len(models.Sentiments)),
	}
	for _, item := range items {
		switch item.Status {
		case models.StatusNeedsAttention:
			summary.NeedsAttention++
		case models.StatusActive:
			summary.Active++
		case models.StatusResolved:
			summary.Resolved++
		}
		if item.Sentiment != "" {
			summary.BySentiment[item.Sentiment]++
		}
	}
	return summary
}

// ResolvedRatio is the resolved share of the collection in [0,1].
func (s Summary) ResolvedRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Resolved) / float64(s.Total)
}
