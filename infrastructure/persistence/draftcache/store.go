// Package draftcache implements the durable draft store as a typed
// wrapper over a generic key/value medium. Values are JSON-encoded per
// field; a missing or undecodable value falls back to the field's
// default so a corrupted store can never break the publish page.
package draftcache

import (
	"context"
	"encoding/json"
	"fmt"

	"appprove-backend/application/ports"
	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"

	"go.uber.org/zap"
)

// Field keys, kept wire-compatible with the original browser storage
// layout.
const (
	keySelectedKeywords = "selectedKeywords"
	keyBudget           = "budget"
	keyURL              = "url"
	keyDescription      = "description"
	keyDate             = "date"
	keyRecordID         = "id"
)

// Legacy clients persisted the literal string "undefined"; treat it as
// absent.
const absentSentinel = "undefined"

// Store implements ports.DraftStore over any ports.KeyValueStore.
type Store struct {
	kv     ports.KeyValueStore
	logger *zap.Logger
}

// New creates a draft store backed by the given key/value medium.
func New(kv ports.KeyValueStore, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load assembles a draft from its stored fields. Absent fields yield
// their defaults; decode failures are logged and swallowed, never
// surfaced to the page.
func (s *Store) Load(ctx context.Context, owner string) (*offer.Draft, error) {
	draft := &offer.Draft{}

	loadField(s, ctx, owner, keySelectedKeywords, &draft.Keywords, []keyword.Keyword{})
	loadField(s, ctx, owner, keyBudget, &draft.Budget, "")
	loadField(s, ctx, owner, keyURL, &draft.URL, "")
	loadField(s, ctx, owner, keyDescription, &draft.Description, "")
	loadField(s, ctx, owner, keyDate, &draft.Date, offer.DateRange{})
	loadField(s, ctx, owner, keyRecordID, &draft.RecordID, int64(0))

	return draft, nil
}

// Save writes every draft field as its own JSON value.
func (s *Store) Save(ctx context.Context, owner string, d *offer.Draft) error {
	fields := map[string]interface{}{
		keySelectedKeywords: d.Keywords,
		keyBudget:           d.Budget,
		keyURL:              d.URL,
		keyDescription:      d.Description,
		keyDate:             d.Date,
		keyRecordID:         d.RecordID,
	}
	for key, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode draft field %s: %w", key, err)
		}
		if err := s.kv.Put(ctx, owner, key, string(encoded)); err != nil {
			return fmt.Errorf("failed to store draft field %s: %w", key, err)
		}
	}
	return nil
}

// Clear removes every stored field for the owner. Until the next Save,
// Load returns an empty draft.
func (s *Store) Clear(ctx context.Context, owner string) error {
	return s.kv.DeleteOwner(ctx, owner)
}

// loadField decodes one stored field into target, falling back to def on
// absence, the "undefined" sentinel, or any decode failure.
func loadField[T any](s *Store, ctx context.Context, owner, key string, target *T, def T) {
	*target = def

	raw, found, err := s.kv.Get(ctx, owner, key)
	if err != nil {
		s.logger.Warn("Draft field read failed, using default",
			zap.String("owner", owner),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if !found || raw == "" || raw == absentSentinel {
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		*target = def
		s.logger.Warn("Draft field decode failed, using default",
			zap.String("owner", owner),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
