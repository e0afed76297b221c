package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

func testConversations() []models.Conversation {
	ts := time.Date(2026, time.February, 4, 9, 30, 0, 0, time.UTC)
	return []models.Conversation{
		{
			ID:          "b",
			PatientName: "Michael Chen",
			Phone:       "(555) 214-7781",
			Email:       "michael@example.com",
			LastMessage: "swelling",
			Timestamp:   ts,
			Assistant:   "CareBot",
			Status:      models.StatusNeedsAttention,
			Sentiment:   models.SentimentAnxious,
			Clinic:      &models.Clinic{ID: "c1", Name: "Riverside"},
			Protocol:    models.StringPtr("Post-Surgery Recovery"),
			Companion:   models.StringPtr("Ava"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "hello", Timestamp: ts.Add(-time.Minute)},
				{Sender: models.SenderUser, Content: "swelling", Timestamp: ts},
			},
		},
		{
			ID:          "a",
			PatientName: "Aisha Patel",
			Status:      models.StatusActive,
			Sentiment:   models.SentimentNeutral,
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestReplaceAllAndListPreservesOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, testConversations()))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)

	first := items[0]
	require.NotNil(t, first.Clinic)
	assert.Equal(t, "c1", first.Clinic.ID)
	assert.Equal(t, "Riverside", first.Clinic.Name)
	assert.Equal(t, "Post-Surgery Recovery", first.ProtocolName())
	assert.Equal(t, "Ava", first.CompanionName())
	assert.True(t, first.Timestamp.Equal(testConversations()[0].Timestamp))
	require.Len(t, first.Messages, 2)
	assert.Equal(t, models.SenderBot, first.Messages[0].Sender)
	assert.Equal(t, 2, first.MessageCount())

	second := items[1]
	assert.Nil(t, second.Clinic)
	assert.Nil(t, second.Protocol)
	assert.Nil(t, second.Companion)
	assert.True(t, second.Timestamp.IsZero())
	assert.Empty(t, second.Messages)
}

func TestSubsecondTimestampsKeepSortOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.February, 4, 9, 30, 0, 0, time.UTC)
	items := []models.Conversation{
		{ID: "early", PatientName: "A", Status: models.StatusActive, Sentiment: models.SentimentHappy, Timestamp: base.Add(100 * time.Millisecond)},
		{ID: "late", PatientName: "B", Status: models.StatusActive, Sentiment: models.SentimentHappy, Timestamp: base.Add(900 * time.Millisecond)},
	}
	require.Equal(t, "late", monitor.SortByTimestamp(items, monitor.SortDesc)[0].ID)

	require.NoError(t, s.ReplaceAll(ctx, items))
	stored, err := s.List(ctx)
	require.NoError(t, err)
	require.True(t, stored[1].Timestamp.Equal(items[1].Timestamp))

	assert.Equal(t, "late", monitor.SortByTimestamp(stored, monitor.SortDesc)[0].ID)
	assert.Equal(t, "early", monitor.SortByTimestamp(stored, monitor.SortAsc)[0].ID)
}

func TestReplaceAllOverwritesSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, testConversations()))
	require.NoError(t, s.ReplaceAll(ctx, testConversations()[1:]))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, testConversations()))

	item, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Michael Chen", item.PatientName)
	assert.Len(t, item.Messages, 2)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAllRollsBackOnDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, testConversations()))

	dup := testConversations()
	dup[1].ID = dup[0].ID
	require.Error(t, s.ReplaceAll(ctx, dup))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carewatch.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceAll(context.Background(), testConversations()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	items, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = Open("  ")
	require.Error(t, err)
}

func TestWithRetryRetriesOnBusy(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnNonBusy(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryStopsAfterMaxAttempts(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 2, time.Millisecond, func() error {
		attempts++
		return errors.New("database is busy")
	})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetryHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := withRetry(ctx, 3, time.Millisecond, func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransactionWithRetry(t *testing.T) {
	s := openTestStore(t)
	attempts := 0
	err := s.TransactionWithRetry(context.Background(), 3, time.Millisecond, func(tx *sql.Tx) error {
		attempts++
		if attempts < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
