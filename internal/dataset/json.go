package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/tOgg1/carewatch/internal/models"
)

// ErrDuplicateID is returned when an import repeats a conversation id.
var ErrDuplicateID = errors.New("duplicate conversation id")

type messageRecord struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// conversationRecord is the interchange shape. Timestamps are strings so
// that unparseable values degrade instead of failing the whole import.
type conversationRecord struct {
	ID              string          `json:"id"`
	PatientName     string          `json:"patientName"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	LastMessage     string          `json:"lastMessage"`
	Timestamp       string          `json:"timestamp"`
	Assistant       string          `json:"assistant"`
	Status          string          `json:"status"`
	Sentiment       string          `json:"sentiment"`
	Context         string          `json:"context"`
	NextAppointment string          `json:"nextAppointment"`
	ClinicID        string          `json:"clinicId,omitempty"`
	ClinicName      string          `json:"clinicName,omitempty"`
	Protocol        string          `json:"protocolName,omitempty"`
	Companion       string          `json:"companionName,omitempty"`
	Messages        []messageRecord `json:"messages"`
}

type envelope struct {
	Conversations []conversationRecord `json:"conversations"`
}

// DecodeJSON reads either a bare array of conversation records or an
// object with a "conversations" array. Records without an id receive a
// random UUID. Every record is validated.
func DecodeJSON(r io.Reader) ([]models.Conversation, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read conversations: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var records []conversationRecord
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode conversations: %w", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode conversations: %w", err)
		}
		records = env.Conversations
	}

	out := make([]models.Conversation, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	validation := &models.ValidationErrors{}
	for i, rec := range records {
		conv := rec.toModel()
		if _, dup := seen[conv.ID]; dup {
			validation.Add(fmt.Sprintf("conversations[%d].id", i), fmt.Errorf("%w %q", ErrDuplicateID, conv.ID))
			continue
		}
		seen[conv.ID] = struct{}{}
		if err := conv.Validate(); err != nil {
			validation.Add(fmt.Sprintf("conversations[%d]", i), err)
			continue
		}
		out = append(out, conv)
	}
	if err := validation.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeJSON writes conversations in the interchange shape.
func EncodeJSON(w io.Writer, items []models.Conversation) error {
	records := make([]conversationRecord, 0, len(items))
	for _, item := range items {
		records = append(records, fromModel(item))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{Conversations: records})
}

func (r conversationRecord) toModel() models.Conversation {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.New().String()
	}
	status, ok := models.ParseStatus(r.Status)
	if !ok {
		status = models.Status(r.Status)
	}
	sentiment, ok := models.ParseSentiment(r.Sentiment)
	if !ok {
		sentiment = models.Sentiment(r.Sentiment)
	}

	conv := models.Conversation{
		ID:              id,
		PatientName:     strings.TrimSpace(r.PatientName),
		Phone:           strings.TrimSpace(r.Phone),
		Email:           strings.TrimSpace(r.Email),
		LastMessage:     r.LastMessage,
		Timestamp:       models.ParseTimestamp(r.Timestamp),
		Assistant:       strings.TrimSpace(r.Assistant),
		Status:          status,
		Sentiment:       sentiment,
		Context:         r.Context,
		NextAppointment: strings.TrimSpace(r.NextAppointment),
		Protocol:        models.OptionalString(r.Protocol),
		Companion:       models.OptionalString(r.Companion),
	}
	clinicID := strings.TrimSpace(r.ClinicID)
	clinicName := strings.TrimSpace(r.ClinicName)
	if clinicID != "" || clinicName != "" {
		conv.Clinic = &models.Clinic{ID: clinicID, Name: clinicName}
	}
	for _, msg := range r.Messages {
		sender, ok := models.ParseSender(msg.Sender)
		if !ok {
			sender = models.Sender(msg.Sender)
		}
		conv.Messages = append(conv.Messages, models.Message{
			Sender:    sender,
			Content:   msg.Content,
			Timestamp: models.ParseTimestamp(msg.Timestamp),
		})
	}
	return conv
}

func fromModel(c models.Conversation) conversationRecord {
	rec := conversationRecord{
		ID:              c.ID,
		PatientName:     c.PatientName,
		Phone:           c.Phone,
		Email:           c.Email,
		LastMessage:     c.LastMessage,
		Timestamp:       models.FormatTimestamp(c.Timestamp),
		Assistant:       c.Assistant,
		Status:          string(c.Status),
		Sentiment:       string(c.Sentiment),
		Context:         c.Context,
		NextAppointment: c.NextAppointment,
		Protocol:        c.ProtocolName(),
		Companion:       c.CompanionName(),
	}
	if c.Clinic != nil {
		rec.ClinicID = c.Clinic.ID
		rec.ClinicName = c.Clinic.Name
	}
	for _, msg := range c.Messages {
		rec.Messages = append(rec.Messages, messageRecord{
			Sender:    string(msg.Sender),
			Content:   msg.Content,
			Timestamp: models.FormatTimestamp(msg.Timestamp),
		})
	}
	return rec
}
