package handlers

import (
	"context"
	"testing"

	"appprove-backend/application/queries"
	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOfferRepo struct {
	published []*offer.Offer
	err       error
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *offer.Offer) (int64, error) { return 0, nil }
func (r *fakeOfferRepo) Update(ctx context.Context, id int64, o *offer.Offer) error {
	return nil
}
func (r *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*offer.Offer, error) {
	for _, o := range r.published {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOfferRepo) ListPublished(ctx context.Context) ([]*offer.Offer, error) {
	return r.published, r.err
}
func (r *fakeOfferRepo) UpdateParticipants(ctx context.Context, id int64, participants []string) error {
	return nil
}

func publishedOffer(id int64, url string, keywords ...string) *offer.Offer {
	o := &offer.Offer{ID: id, URL: url, PaymentStatus: offer.PaymentComplete}
	for _, k := range keywords {
		o.Keywords = append(o.Keywords, keyword.Keyword{Value: k, Label: k})
	}
	return o
}

func TestListOffersFiltersByKeyword(t *testing.T) {
	repo := &fakeOfferRepo{published: []*offer.Offer{
		publishedOffer(1, "acme/widget", "go", "security"),
		publishedOffer(2, "acme/gadget", "rust"),
		publishedOffer(3, "acme/site", "golang"),
	}}
	handler := NewListOffersHandler(repo, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ListOffersQuery{Keyword: "go"})
	require.NoError(t, err)

	listing := result.(*queries.ListOffersResult)
	require.Len(t, listing.Offers, 2)
	assert.Equal(t, int64(1), listing.Offers[0].ID)
	assert.Equal(t, int64(3), listing.Offers[1].ID)
	assert.Equal(t, 2, listing.TotalCount)
}

func TestListOffersEmptyKeywordReturnsAll(t *testing.T) {
	repo := &fakeOfferRepo{published: []*offer.Offer{
		publishedOffer(1, "acme/widget", "go"),
		publishedOffer(2, "acme/gadget", "rust"),
	}}
	handler := NewListOffersHandler(repo, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ListOffersQuery{})
	require.NoError(t, err)
	assert.Len(t, result.(*queries.ListOffersResult).Offers, 2)
}

func TestListOffersPagination(t *testing.T) {
	repo := &fakeOfferRepo{}
	for i := int64(1); i <= 5; i++ {
		repo.published = append(repo.published, publishedOffer(i, "acme/repo", "go"))
	}
	handler := NewListOffersHandler(repo, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ListOffersQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)

	listing := result.(*queries.ListOffersResult)
	require.Len(t, listing.Offers, 2)
	assert.Equal(t, int64(3), listing.Offers[0].ID)
	assert.Equal(t, 5, listing.TotalCount)
}

func TestListOffersOffsetPastEnd(t *testing.T) {
	repo := &fakeOfferRepo{published: []*offer.Offer{publishedOffer(1, "acme/repo", "go")}}
	handler := NewListOffersHandler(repo, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ListOffersQuery{Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, result.(*queries.ListOffersResult).Offers)
}

func TestGetDraftAbsenceYieldsEmptyDraft(t *testing.T) {
	handler := NewGetDraftHandler(emptyDraftStore{}, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.GetDraftQuery{Owner: "user-1"})
	require.NoError(t, err)

	draft := result.(*offer.Draft)
	assert.True(t, draft.IsNew())
	assert.Empty(t, draft.URL)
}

type emptyDraftStore struct{}

func (emptyDraftStore) Load(ctx context.Context, owner string) (*offer.Draft, error) {
	return &offer.Draft{}, nil
}
func (emptyDraftStore) Save(ctx context.Context, owner string, d *offer.Draft) error { return nil }
func (emptyDraftStore) Clear(ctx context.Context, owner string) error                { return nil }
