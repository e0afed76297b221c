// Package store persists conversation snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tOgg1/carewatch/internal/models"
)

// ErrNotFound is returned when a conversation id is not stored.
var ErrNotFound = errors.New("conversation not found")

// Store is a SQLite-backed conversation snapshot.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)", path)
	return open(dsn)
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Store, error) {
	return open(":memory:?_pragma=foreign_keys(ON)")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation database: %w", err)
	}
	// One connection: SQLite has a single writer and :memory: is per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to conversation database: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			patient_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			last_message TEXT NOT NULL DEFAULT '',
			timestamp TEXT NOT NULL DEFAULT '',
			assistant TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			sentiment TEXT NOT NULL,
			context TEXT NOT NULL DEFAULT '',
			next_appointment TEXT NOT NULL DEFAULT '',
			clinic_id TEXT,
			clinic_name TEXT,
			protocol TEXT,
			companion TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			sender TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (conversation_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS conversations_position_idx ON conversations(position)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize conversation schema: %w", err)
		}
	}
	return nil
}

// ReplaceAll swaps the stored snapshot for items, preserving their order.
func (s *Store) ReplaceAll(ctx context.Context, items []models.Conversation) error {
	if s == nil || s.db == nil {
		return errors.New("conversation store unavailable")
	}
	return s.TransactionWithRetry(ctx, 0, 0, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
			return fmt.Errorf("failed to clear messages: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM conversations`); err != nil {
			return fmt.Errorf("failed to clear conversations: %w", err)
		}

		convStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO conversations (
				id, position, patient_name, phone, email, last_message, timestamp,
				assistant, status, sentiment, context, next_appointment,
				clinic_id, clinic_name, protocol, companion
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare conversation insert: %w", err)
		}
		defer convStmt.Close()

		msgStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO messages (conversation_id, seq, sender, content, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare message insert: %w", err)
		}
		defer msgStmt.Close()

		for pos, item := range items {
			var clinicID, clinicName sql.NullString
			if item.Clinic != nil {
				clinicID = sql.NullString{String: item.Clinic.ID, Valid: true}
				clinicName = sql.NullString{String: item.Clinic.Name, Valid: true}
			}
			if _, err := convStmt.ExecContext(ctx,
				item.ID,
				pos,
				item.PatientName,
				item.Phone,
				item.Email,
				item.LastMessage,
				models.FormatTimestamp(item.Timestamp),
				item.Assistant,
				string(item.Status),
				string(item.Sentiment),
				item.Context,
				item.NextAppointment,
				clinicID,
				clinicName,
				nullString(item.Protocol),
				nullString(item.Companion),
			); err != nil {
				return fmt.Errorf("failed to insert conversation %s: %w", item.ID, err)
			}
			for seq, msg := range item.Messages {
				if _, err := msgStmt.ExecContext(ctx,
					item.ID,
					seq,
					string(msg.Sender),
					msg.Content,
					models.FormatTimestamp(msg.Timestamp),
				); err != nil {
					return fmt.Errorf("failed to insert message %s/%d: %w", item.ID, seq, err)
				}
			}
		}
		return nil
	})
}

// List returns every stored conversation in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Conversation, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("conversation store unavailable")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, patient_name, phone, email, last_message, timestamp,
			assistant, status, sentiment, context, next_appointment,
			clinic_id, clinic_name, protocol, companion
		FROM conversations
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	items, err := scanConversations(rows)
	if err != nil {
		return nil, err
	}

	messages, err := s.messagesByConversation(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Messages = messages[items[i].ID]
	}
	return items, nil
}

// Get returns a single conversation with its messages.
func (s *Store) Get(ctx context.Context, id string) (models.Conversation, error) {
	if s == nil || s.db == nil {
		return models.Conversation{}, errors.New("conversation store unavailable")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, patient_name, phone, email, last_message, timestamp,
			assistant, status, sentiment, context, next_appointment,
			clinic_id, clinic_name, protocol, companion
		FROM conversations
		WHERE id = ?
	`, id)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to query conversation: %w", err)
	}
	items, err := scanConversations(rows)
	if err != nil {
		return models.Conversation{}, err
	}
	if len(items) == 0 {
		return models.Conversation{}, ErrNotFound
	}

	messages, err := s.messagesByConversation(ctx, id)
	if err != nil {
		return models.Conversation{}, err
	}
	item := items[0]
	item.Messages = messages[id]
	return item, nil
}

// Count returns the number of stored conversations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return n, nil
}

func (s *Store) messagesByConversation(ctx context.Context, id string) (map[string][]models.Message, error) {
	query := `SELECT conversation_id, sender, content, timestamp FROM messages`
	args := []any{}
	if id != "" {
		query += ` WHERE conversation_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY conversation_id, seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Message)
	for rows.Next() {
		var (
			convID    string
			sender    string
			content   string
			timestamp string
		)
		if err := rows.Scan(&convID, &sender, &content, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		out[convID] = append(out[convID], models.Message{
			Sender:    models.Sender(sender),
			Content:   content,
			Timestamp: models.ParseTimestamp(timestamp),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return out, nil
}

func scanConversations(rows *sql.Rows) ([]models.Conversation, error) {
	defer rows.Close()

	var items []models.Conversation
	for rows.Next() {
		var (
			item       models.Conversation
			timestamp  string
			status     string
			sentiment  string
			clinicID   sql.NullString
			clinicName sql.NullString
			protocol   sql.NullString
			companion  sql.NullString
		)
		if err := rows.Scan(
			&item.ID,
			&item.PatientName,
			&item.Phone,
			&item.Email,
			&item.LastMessage,
			&timestamp,
			&item.Assistant,
			&status,
			&sentiment,
			&item.Context,
			&item.NextAppointment,
			&clinicID,
			&clinicName,
			&protocol,
			&companion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		item.Timestamp = models.ParseTimestamp(timestamp)
		item.Status = models.Status(status)
		item.Sentiment = models.Sentiment(sentiment)
		if clinicID.Valid {
			item.Clinic = &models.Clinic{ID: clinicID.String, Name: clinicName.String}
		}
		if protocol.Valid {
			item.Protocol = models.StringPtr(protocol.String)
		}
		if companion.Valid {
			item.Companion = models.StringPtr(companion.String)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversations: %w", err)
	}
	return items, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
