package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"appprove-backend/application/commands"
	"appprove-backend/application/ports"
	"appprove-backend/domain/events"
	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"
	apperrors "appprove-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDraftStore struct {
	drafts map[string]*offer.Draft
	saves  int
	clears int
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]*offer.Draft)}
}

func (s *fakeDraftStore) Load(ctx context.Context, owner string) (*offer.Draft, error) {
	if d, ok := s.drafts[owner]; ok {
		copied := *d
		return &copied, nil
	}
	return &offer.Draft{}, nil
}

func (s *fakeDraftStore) Save(ctx context.Context, owner string, d *offer.Draft) error {
	copied := *d
	s.drafts[owner] = &copied
	s.saves++
	return nil
}

func (s *fakeDraftStore) Clear(ctx context.Context, owner string) error {
	delete(s.drafts, owner)
	s.clears++
	return nil
}

type fakeOfferRepo struct {
	nextID    int64
	createErr error
	updateErr error
	creates   int
	updates   int
	lastOffer *offer.Offer
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *offer.Offer) (int64, error) {
	r.creates++
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.lastOffer = o
	return r.nextID, nil
}

func (r *fakeOfferRepo) Update(ctx context.Context, id int64, o *offer.Offer) error {
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.lastOffer = o
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*offer.Offer, error) {
	return nil, nil
}

func (r *fakeOfferRepo) ListPublished(ctx context.Context) ([]*offer.Offer, error) {
	return nil, nil
}

func (r *fakeOfferRepo) UpdateParticipants(ctx context.Context, id int64, participants []string) error {
	return nil
}

type fakePayments struct {
	calls int
	err   error
}

func (p *fakePayments) CreateIntent(ctx context.Context, o *offer.Offer, userID string) error {
	p.calls++
	return p.err
}

type fakeEventBus struct {
	published []events.DomainEvent
}

func (b *fakeEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	b.published = append(b.published, batch...)
	return nil
}

func submittableDraft() *offer.Draft {
	from := time.Now().Add(24 * time.Hour)
	return &offer.Draft{
		URL:         "acme/payments-gateway",
		Description: "Audit the settlement path.",
		Budget:      "1500",
		Date:        offer.DateRange{From: &from},
		Keywords:    []keyword.Keyword{{Value: "payments", Label: "Payments"}},
	}
}

func newOrchestrator(drafts *fakeDraftStore, repo *fakeOfferRepo, payments *fakePayments, bus *fakeEventBus) *SubmitOfferOrchestrator {
	var eventBus ports.EventBus
	if bus != nil {
		eventBus = bus
	}
	return NewSubmitOfferOrchestrator(drafts, repo, payments, eventBus, nil, zap.NewNop())
}

func TestSubmitFreshDraftCreatesOffer(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{nextID: 99}
	payments := &fakePayments{}
	eventBus := &fakeEventBus{}
	orch := newOrchestrator(drafts, repo, payments, eventBus)

	result, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  submittableDraft(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(99), result.OfferID)
	assert.True(t, result.Created)
	assert.Equal(t, 1, repo.creates, "createOffer called exactly once")
	assert.Zero(t, repo.updates)
	assert.Equal(t, 1, payments.calls, "payment intent issued on success")
	assert.Equal(t, 1, drafts.clears, "durable store cleared on success")
	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "offer.published", eventBus.published[0].GetEventType())
	require.NotNil(t, repo.lastOffer)
	assert.NotNil(t, repo.lastOffer.Date.To, "open-ended range is normalized before the remote write")
}

func TestSubmitFailedUpdatePreservesDraft(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{updateErr: errors.New("supabase unavailable")}
	payments := &fakePayments{}
	orch := newOrchestrator(drafts, repo, payments, nil)

	draft := submittableDraft()
	draft.RecordID = 42

	_, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  draft,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteWrite))
	assert.Zero(t, payments.calls, "no payment intent on failure")
	assert.Zero(t, drafts.clears)

	stored, loadErr := drafts.Load(context.Background(), "user-1")
	require.NoError(t, loadErr)
	assert.Equal(t, int64(42), stored.RecordID, "draft including the record id survives the failed write")
	assert.Equal(t, draft.URL, stored.URL)
}

func TestSubmitExistingDraftUpdatesOffer(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{}
	payments := &fakePayments{}
	orch := newOrchestrator(drafts, repo, payments, nil)

	draft := submittableDraft()
	draft.RecordID = 42

	result, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  draft,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.OfferID)
	assert.False(t, result.Created)
	assert.Zero(t, repo.creates)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, 1, payments.calls)
}

func TestSubmitInvalidDraftNeverTouchesRemoteStore(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{}
	payments := &fakePayments{}
	orch := newOrchestrator(drafts, repo, payments, nil)

	_, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  &offer.Draft{},
	})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "You forgot to add a repo", appErr.Fields["url"])
	assert.Zero(t, repo.creates)
	assert.Zero(t, repo.updates)
	assert.Zero(t, drafts.saves, "validation failures never reach the draft snapshot")
	assert.Zero(t, payments.calls)
}

func TestSubmitFailedCreateKeepsNewDraft(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{createErr: errors.New("insert rejected")}
	orch := newOrchestrator(drafts, repo, &fakePayments{}, nil)

	_, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  submittableDraft(),
	})

	require.Error(t, err)
	stored, loadErr := drafts.Load(context.Background(), "user-1")
	require.NoError(t, loadErr)
	assert.True(t, stored.IsNew(), "no id captured when create fails")
	assert.Equal(t, "acme/payments-gateway", stored.URL)
}

func TestSubmitPaymentFailureStillSucceeds(t *testing.T) {
	drafts := newFakeDraftStore()
	repo := &fakeOfferRepo{nextID: 5}
	payments := &fakePayments{err: errors.New("provider down")}
	orch := newOrchestrator(drafts, repo, payments, nil)

	result, err := orch.Handle(context.Background(), commands.SubmitOfferCommand{
		Owner:  "user-1",
		UserID: "user-1",
		Draft:  submittableDraft(),
	})

	require.NoError(t, err, "payment errors are non-blocking")
	assert.Equal(t, int64(5), result.OfferID)
	assert.Equal(t, 1, drafts.clears)
}
