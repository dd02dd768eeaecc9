package handlers

import (
	"context"

	"appprove-backend/application/ports"
	"appprove-backend/application/queries"
	"appprove-backend/application/queries/bus"
	"appprove-backend/domain/offer"
	apperrors "appprove-backend/pkg/errors"

	"go.uber.org/zap"
)

// ListOffersHandler serves the marketplace listing. Filtering happens
// here rather than in the store so keyword search stays consistent with
// the domain matching rules.
type ListOffersHandler struct {
	offers ports.OfferRepository
	logger *zap.Logger
}

// NewListOffersHandler creates a new handler instance
func NewListOffersHandler(offers ports.OfferRepository, logger *zap.Logger) *ListOffersHandler {
	return &ListOffersHandler{offers: offers, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *ListOffersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListOffersQuery)
	if !ok {
		return nil, bus.ErrWrongQueryType
	}

	published, err := h.offers.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*offer.Offer, 0, len(published))
	for _, o := range published {
		if o.MatchesKeyword(q.Keyword) {
			filtered = append(filtered, o)
		}
	}

	total := len(filtered)
	limit := q.Limit
	if limit <= 0 || limit > total {
		limit = total
	}
	offset := q.Offset
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &queries.ListOffersResult{
		Offers:     filtered[offset:end],
		TotalCount: total,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}, nil
}

// GetOfferHandler fetches one offer.
type GetOfferHandler struct {
	offers ports.OfferRepository
	logger *zap.Logger
}

// NewGetOfferHandler creates a new handler instance
func NewGetOfferHandler(offers ports.OfferRepository, logger *zap.Logger) *GetOfferHandler {
	return &GetOfferHandler{offers: offers, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *GetOfferHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetOfferQuery)
	if !ok {
		return nil, bus.ErrWrongQueryType
	}

	o, err := h.offers.GetByID(ctx, q.OfferID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NewNotFoundError("offer")
	}
	return o, nil
}

// ListKeywordsHandler serves the keyword catalog for the publish form.
type ListKeywordsHandler struct {
	catalog ports.KeywordCatalog
	logger  *zap.Logger
}

// NewListKeywordsHandler creates a new handler instance
func NewListKeywordsHandler(catalog ports.KeywordCatalog, logger *zap.Logger) *ListKeywordsHandler {
	return &ListKeywordsHandler{catalog: catalog, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *ListKeywordsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListKeywordsQuery); !ok {
		return nil, bus.ErrWrongQueryType
	}

	catalog, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return &queries.ListKeywordsResult{Keywords: catalog}, nil
}

// ListRepositoriesHandler lists a seller's repositories from the code
// host.
type ListRepositoriesHandler struct {
	lister ports.RepositoryLister
	logger *zap.Logger
}

// NewListRepositoriesHandler creates a new handler instance
func NewListRepositoriesHandler(lister ports.RepositoryLister, logger *zap.Logger) *ListRepositoriesHandler {
	return &ListRepositoriesHandler{lister: lister, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *ListRepositoriesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListRepositoriesQuery)
	if !ok {
		return nil, bus.ErrWrongQueryType
	}
	return h.lister.ListForUser(ctx, q.Username)
}

// GetDraftHandler loads the stored draft for the publish page.
type GetDraftHandler struct {
	drafts ports.DraftStore
	logger *zap.Logger
}

// NewGetDraftHandler creates a new handler instance
func NewGetDraftHandler(drafts ports.DraftStore, logger *zap.Logger) *GetDraftHandler {
	return &GetDraftHandler{drafts: drafts, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *GetDraftHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetDraftQuery)
	if !ok {
		return nil, bus.ErrWrongQueryType
	}
	return h.drafts.Load(ctx, q.Owner)
}
