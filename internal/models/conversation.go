// Package models defines the conversation records monitored by carewatch.
package models

import (
	"strings"
	"time"
)

// Status is the triage state of a conversation.
type Status string

const (
	StatusNeedsAttention Status = "Needs Attention"
	StatusActive         Status = "active"
	StatusResolved       Status = "resolved"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNeedsAttention, StatusActive, StatusResolved}

// Sentiment is the detected patient mood for a conversation.
type Sentiment string

const (
	SentimentHappy   Sentiment = "happy"
	SentimentSad     Sentiment = "sad"
	SentimentAngry   Sentiment = "angry"
	SentimentNeutral Sentiment = "neutral"
	SentimentAnxious Sentiment = "anxious"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{SentimentHappy, SentimentSad, SentimentAngry, SentimentNeutral, SentimentAnxious}

// Sender identifies who wrote a message.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Clinic is the care site a conversation belongs to.
type Clinic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Message is a single turn of a conversation.
type Message struct {
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a patient thread with an AI companion.
type Conversation struct {
	// ID is unique within a collection.
	ID string `json:"id"`

	PatientName string `json:"patient_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`

	// LastMessage is the summary line shown in lists.
	LastMessage string `json:"last_message"`

	// Timestamp is the last activity instant. Zero means unknown.
	Timestamp time.Time `json:"timestamp"`

	// Assistant is the display name of the AI assistant answering.
	Assistant string `json:"assistant,omitempty"`

	Status    Status    `json:"status"`
	Sentiment Sentiment `json:"sentiment"`

	Context         string `json:"context,omitempty"`
	NextAppointment string `json:"next_appointment,omitempty"`

	Clinic    *Clinic `json:"clinic,omitempty"`
	Protocol  *string `json:"protocol,omitempty"`
	Companion *string `json:"companion,omitempty"`

	Messages []Message `json:"messages,omitempty"`
}

// MessageCount is derived from the owned message sequence.
func (c Conversation) MessageCount() int {
	return len(c.Messages)
}

// NeedsAttention reports whether the conversation is flagged for staff.
func (c Conversation) NeedsAttention() bool {
	return c.Status == StatusNeedsAttention
}

// ClinicName returns the clinic name or "" when absent.
func (c Conversation) ClinicName() string {
	if c.Clinic == nil {
		return ""
	}
	return c.Clinic.Name
}

// ProtocolName returns the protocol or "" when absent.
func (c Conversation) ProtocolName() string {
	return deref(c.Protocol)
}

// CompanionName returns the companion or "" when absent.
func (c Conversation) CompanionName() string {
	return deref(c.Companion)
}

// Clone returns a deep copy.
func (c Conversation) Clone() Conversation {
	cloned := c
	if c.Clinic != nil {
		clinic := *c.Clinic
		cloned.Clinic = &clinic
	}
	if c.Protocol != nil {
		cloned.Protocol = StringPtr(*c.Protocol)
	}
	if c.Companion != nil {
		cloned.Companion = StringPtr(*c.Companion)
	}
	if len(c.Messages) > 0 {
		cloned.Messages = append([]Message(nil), c.Messages...)
	}
	return cloned
}

// CloneAll deep-copies a collection.
func CloneAll(items []Conversation) []Conversation {
	if len(items) == 0 {
		return nil
	}
	out := make([]Conversation, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// OptionalString returns nil for blank input.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return StringPtr(strings.TrimSpace(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseStatus resolves a status case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	key := normalizeEnum(raw)
	for _, status := range Statuses {
		if normalizeEnum(string(status)) == key {
			return status, true
		}
	}
	return "", false
}

// ParseSentiment resolves a sentiment case-insensitively.
func ParseSentiment(raw string) (Sentiment, bool) {
	key := normalizeEnum(raw)
	for _, sentiment := range Sentiments {
		if string(sentiment) == key {
			return sentiment, true
		}
	}
	return "", false
}

// ParseSender resolves a sender. "assistant" is accepted for bot and
// "patient" for user.
func ParseSender(raw string) (Sender, bool) {
	switch normalizeEnum(raw) {
	case "bot", "assistant":
		return SenderBot, true
	case "user", "patient":
		return SenderUser, true
	default:
		return "", false
	}
}

func normalizeEnum(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.ReplaceAll(key, "-", " ")
	return strings.Join(strings.Fields(key), " ")
}
