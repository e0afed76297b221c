package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorsIs(t *testing.T) {
	validation := &ValidationErrors{}
	validation.Add("id", ErrMissingID)

	err := validation.Err()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingID))
}

func TestValidationErrorsNestedFields(t *testing.T) {
	nested := &ValidationErrors{}
	nested.AddMessage("sender", "unknown sender")

	validation := &ValidationErrors{}
	validation.Add("messages[0]", nested)

	var list *ValidationErrors
	require.ErrorAs(t, validation.Err(), &list)
	require.Len(t, list.Errors, 1)
	require.Equal(t, "messages[0].sender", list.Errors[0].Field)
}

func TestConversationValidate(t *testing.T) {
	valid := Conversation{
		ID:          "1",
		PatientName: "Michael Chen",
		Status:      StatusActive,
		Sentiment:   SentimentNeutral,
		Messages:    []Message{{Sender: SenderBot, Content: "hi"}},
	}
	require.NoError(t, valid.Validate())

	broken := Conversation{
		Status:    "pending",
		Sentiment: "confused",
		Clinic:    &Clinic{Name: "Eastside"},
		Messages:  []Message{{Sender: "nurse"}},
	}
	err := broken.Validate()
	require.Error(t, err)
	for _, target := range []error{ErrMissingID, ErrMissingPatient, ErrInvalidStatus, ErrInvalidSentiment, ErrMissingClinicID, ErrInvalidSender} {
		require.ErrorIs(t, err, target)
	}
}

func TestParseStatusAcceptsVariants(t *testing.T) {
	for _, raw := range []string{"Needs Attention", "needs_attention", " needs-attention "} {
		status, ok := ParseStatus(raw)
		require.True(t, ok, raw)
		require.Equal(t, StatusNeedsAttention, status)
	}
	_, ok := ParseStatus("closed")
	require.False(t, ok)
}

func TestParseSender(t *testing.T) {
	sender, ok := ParseSender("assistant")
	require.True(t, ok)
	require.Equal(t, SenderBot, sender)

	sender, ok = ParseSender("Patient")
	require.True(t, ok)
	require.Equal(t, SenderUser, sender)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 2, 4, 9, 30, 0, 0, time.UTC)
	require.Equal(t, want, ParseTimestamp("2026-02-04T09:30:00"))
	require.Equal(t, want, ParseTimestamp("2026-02-04T09:30:00Z"))
	require.Equal(t, want, ParseTimestamp("2026-02-04 09:30"))
	require.True(t, ParseTimestamp("10:30 AM").IsZero())
	require.True(t, ParseTimestamp("").IsZero())
	require.Equal(t, "", FormatTimestamp(time.Time{}))
	require.Equal(t, "2026-02-04T09:30:00Z", FormatTimestamp(want))
}

func TestFormatTimestampKeepsSubseconds(t *testing.T) {
	ts := time.Date(2026, 2, 4, 9, 30, 0, 900_000_000, time.UTC)
	require.Equal(t, "2026-02-04T09:30:00.9Z", FormatTimestamp(ts))
	require.True(t, ParseTimestamp(FormatTimestamp(ts)).Equal(ts))
}

func TestMessageCountIsDerived(t *testing.T) {
	c := Conversation{Messages: []Message{{Sender: SenderBot}, {Sender: SenderUser}}}
	require.Equal(t, 2, c.MessageCount())
}

func TestCloneIsDeep(t *testing.T) {
	original := Conversation{
		ID:        "1",
		Clinic:    &Clinic{ID: "c1", Name: "Eastside"},
		Protocol:  StringPtr("Post-op"),
		Companion: StringPtr("Ava"),
		Messages:  []Message{{Sender: SenderBot, Content: "hello"}},
	}
	cloned := original.Clone()
	cloned.Clinic.Name = "changed"
	*cloned.Protocol = "changed"
	cloned.Messages[0].Content = "changed"

	require.Equal(t, "Eastside", original.ClinicName())
	require.Equal(t, "Post-op", original.ProtocolName())
	require.Equal(t, "hello", original.Messages[0].Content)
}
