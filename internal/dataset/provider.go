// Package dataset supplies the conversation collection shown by carewatch.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/store"
)

// Source names where the collection comes from.
type Source string

const (
	SourceSample Source = "sample"
	SourceSQLite Source = "sqlite"
)

// Provider loads the conversation collection once per session.
type Provider interface {
	// Conversations returns the full collection in display order.
	Conversations(ctx context.Context) ([]models.Conversation, error)
}

// ErrNotFound is returned by Lookup when no conversation has the id.
var ErrNotFound = store.ErrNotFound

// Finder is implemented by providers that can fetch one conversation
// without loading the whole collection.
type Finder interface {
	Conversation(ctx context.Context, id string) (models.Conversation, error)
}

// Lookup returns one conversation, through Finder when the provider has it.
func Lookup(ctx context.Context, p Provider, id string) (models.Conversation, error) {
	if finder, ok := p.(Finder); ok {
		return finder.Conversation(ctx, strings.TrimSpace(id))
	}
	items, err := p.Conversations(ctx)
	if err != nil {
		return models.Conversation{}, err
	}
	conv, ok := Find(items, id)
	if !ok {
		return models.Conversation{}, ErrNotFound
	}
	return conv, nil
}

// SampleProvider serves the built-in sample set.
type SampleProvider struct{}

// Conversations returns a fresh deep copy of the sample set.
func (SampleProvider) Conversations(context.Context) ([]models.Conversation, error) {
	return Sample(), nil
}

// Conversation returns one sample conversation.
func (SampleProvider) Conversation(_ context.Context, id string) (models.Conversation, error) {
	conv, ok := Find(Sample(), id)
	if !ok {
		return models.Conversation{}, ErrNotFound
	}
	return conv, nil
}

// StoreProvider reads a SQLite snapshot.
type StoreProvider struct {
	store *store.Store
}

// NewStoreProvider wraps an open store.
func NewStoreProvider(s *store.Store) *StoreProvider {
	return &StoreProvider{store: s}
}

// Conversations lists every stored conversation.
func (p *StoreProvider) Conversations(ctx context.Context) ([]models.Conversation, error) {
	if p == nil || p.store == nil {
		return nil, fmt.Errorf("store unavailable")
	}
	return p.store.List(ctx)
}

// Conversation reads a single row set by id.
func (p *StoreProvider) Conversation(ctx context.Context, id string) (models.Conversation, error) {
	if p == nil || p.store == nil {
		return models.Conversation{}, fmt.Errorf("store unavailable")
	}
	conv, err := p.store.Get(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return models.Conversation{}, fmt.Errorf("get conversation %s: %w", id, err)
	}
	return conv, err
}

// Close releases the underlying store.
func (p *StoreProvider) Close() error {
	if p == nil || p.store == nil {
		return nil
	}
	return p.store.Close()
}

// Open builds the provider for a source. The returned close function is
// always safe to call.
func Open(source string, path string) (Provider, func() error, error) {
	noop := func() error { return nil }
	switch Source(strings.ToLower(strings.TrimSpace(source))) {
	case "", SourceSample:
		return SampleProvider{}, noop, nil
	case SourceSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, noop, fmt.Errorf("sqlite source requires a database path")
		}
		s, err := store.Open(path)
		if err != nil {
			return nil, noop, err
		}
		provider := NewStoreProvider(s)
		return provider, provider.Close, nil
	default:
		return nil, noop, fmt.Errorf("invalid data source %q (expected sample or sqlite)", source)
	}
}

// Find returns the conversation with id.
func Find(items []models.Conversation, id string) (models.Conversation, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Conversation{}, false
	}
	for i := range items {
		if items[i].ID == id {
			return items[i], true
		}
	}
	return models.Conversation{}, false
}

// ForPatient returns every conversation of a patient in collection order.
func ForPatient(items []models.Conversation, patient string) []models.Conversation {
	patient = strings.TrimSpace(patient)
	if patient == "" {
		return nil
	}
	out := make([]models.Conversation, 0, 4)
	for i := range items {
		if strings.EqualFold(strings.TrimSpace(items[i].PatientName), patient) {
			out = append(out, items[i])
		}
	}
	return out
}
