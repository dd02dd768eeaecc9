// Package ports defines the interfaces the application layer depends on.
// Infrastructure adapters (Supabase, DynamoDB, GitHub, the payment
// provider) implement them; command and query handlers consume them.
package ports

import (
	"context"

	"appprove-backend/domain/events"
	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"
	"appprove-backend/domain/survey"
)

// OfferRepository is the remote offer store. The remote side is the sole
// arbiter of concurrent writers: last write wins, no optimistic
// concurrency here.
type OfferRepository interface {
	// Create inserts a new offer row and returns its identifier.
	Create(ctx context.Context, o *offer.Offer) (int64, error)
	// Update overwrites the row with the given id.
	Update(ctx context.Context, id int64, o *offer.Offer) error
	GetByID(ctx context.Context, id int64) (*offer.Offer, error)
	// ListPublished returns offers whose payment completed, newest first.
	ListPublished(ctx context.Context) ([]*offer.Offer, error)
	// UpdateParticipants replaces an offer's participant list.
	UpdateParticipants(ctx context.Context, id int64, participants []string) error
}

// KeywordCatalog is the shared keyword table. Register fails on a
// duplicate value; deduplication is the remote side's job, never the
// client's.
type KeywordCatalog interface {
	List(ctx context.Context) ([]keyword.Keyword, error)
	Register(ctx context.Context, label string) (keyword.Keyword, error)
}

// KeyValueStore is a durable per-owner string key/value medium. Get
// returns found=false on absence; absence is never an error.
type KeyValueStore interface {
	Get(ctx context.Context, owner, key string) (value string, found bool, err error)
	Put(ctx context.Context, owner, key, value string) error
	// DeleteOwner removes every key belonging to owner.
	DeleteOwner(ctx context.Context, owner string) error
}

// DraftStore holds each seller's in-progress offer between visits.
type DraftStore interface {
	// Load returns the stored draft, or an empty draft when none exists
	// or the stored value cannot be decoded.
	Load(ctx context.Context, owner string) (*offer.Draft, error)
	Save(ctx context.Context, owner string, d *offer.Draft) error
	Clear(ctx context.Context, owner string) error
}

// Repository is a source repository as reported by the code host.
type Repository struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Private     bool   `json:"private"`
}

// RepositoryLister fetches the repositories a seller can publish an
// offer for.
type RepositoryLister interface {
	ListForUser(ctx context.Context, username string) ([]Repository, error)
}

// PaymentService starts the payment flow for a submitted offer. Failures
// are surfaced to the user but never roll back the offer write.
type PaymentService interface {
	CreateIntent(ctx context.Context, o *offer.Offer, userID string) error
}

// SurveyRepository persists onboarding survey responses.
type SurveyRepository interface {
	SaveResponse(ctx context.Context, userID string, r *survey.Response) error
}

// EventBus publishes domain events to interested consumers.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}
