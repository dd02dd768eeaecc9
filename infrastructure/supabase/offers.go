package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"
	appErrors "appprove-backend/pkg/errors"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const offersTable = "offers"

// offerRow mirrors the offers table. Dates and keywords are stored as
// JSON columns; participants as a text array.
type offerRow struct {
	ID            int64           `json:"id,omitempty"`
	URL           string          `json:"url"`
	Description   string          `json:"description"`
	Budget        string          `json:"budget"`
	DateFrom      *time.Time      `json:"date_from"`
	DateTo        *time.Time      `json:"date_to"`
	Keywords      json.RawMessage `json:"keywords"`
	Participants  []string        `json:"participants"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
}

// OfferRepository implements ports.OfferRepository on Supabase.
type OfferRepository struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewOfferRepository creates a Supabase-backed offer repository.
func NewOfferRepository(client *supabase.Client, logger *zap.Logger) *OfferRepository {
	return &OfferRepository{client: client, logger: logger}
}

func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) (int64, error) {
	row, err := toRow(o)
	if err != nil {
		return 0, err
	}
	row.ID = 0

	var inserted []offerRow
	if _, err := r.client.From(offersTable).
		Insert(row, false, "", "representation", "").
		ExecuteTo(&inserted); err != nil {
		return 0, appErrors.NewRemoteWriteError("failed to create offer", err)
	}
	if len(inserted) == 0 {
		return 0, appErrors.NewRemoteWriteError("offer insert returned no row", nil)
	}

	r.logger.Info("Offer created", zap.Int64("offerId", inserted[0].ID))
	return inserted[0].ID, nil
}

func (r *OfferRepository) Update(ctx context.Context, id int64, o *offer.Offer) error {
	row, err := toRow(o)
	if err != nil {
		return err
	}
	row.ID = 0
	row.UpdatedAt = time.Now().UTC()

	if _, _, err := r.client.From(offersTable).
		Update(row, "", "").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute(); err != nil {
		return appErrors.NewRemoteWriteError("failed to update offer", err)
	}

	r.logger.Info("Offer updated", zap.Int64("offerId", id))
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*offer.Offer, error) {
	var rows []offerRow
	if _, err := r.client.From(offersTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		ExecuteTo(&rows); err != nil {
		return nil, appErrors.NewExternalError("failed to fetch offer", err)
	}
	if len(rows) == 0 {
		return nil, appErrors.NewNotFoundError(fmt.Sprintf("offer %d not found", id))
	}
	return fromRow(&rows[0])
}

func (r *OfferRepository) ListPublished(ctx context.Context) ([]*offer.Offer, error) {
	var rows []offerRow
	if _, err := r.client.From(offersTable).
		Select("*", "", false).
		Eq("payment_status", offer.PaymentComplete).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows); err != nil {
		return nil, appErrors.NewExternalError("failed to list offers", err)
	}

	offers := make([]*offer.Offer, 0, len(rows))
	for i := range rows {
		o, err := fromRow(&rows[i])
		if err != nil {
			r.logger.Warn("Skipping undecodable offer row",
				zap.Int64("offerId", rows[i].ID), zap.Error(err))
			continue
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func (r *OfferRepository) UpdateParticipants(ctx context.Context, id int64, participants []string) error {
	if participants == nil {
		participants = []string{}
	}
	payload := map[string]interface{}{
		"participants": participants,
		"updated_at":   time.Now().UTC(),
	}
	if _, _, err := r.client.From(offersTable).
		Update(payload, "", "").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute(); err != nil {
		return appErrors.NewRemoteWriteError("failed to update participants", err)
	}
	return nil
}

func toRow(o *offer.Offer) (*offerRow, error) {
	keywordsJSON, err := json.Marshal(keyword.Dedupe(o.Keywords))
	if err != nil {
		return nil, appErrors.NewInternalError("failed to encode keywords").WithCause(err)
	}
	participants := o.Participants
	if participants == nil {
		participants = []string{}
	}
	return &offerRow{
		ID:            o.ID,
		URL:           o.URL,
		Description:   o.Description,
		Budget:        o.Budget,
		DateFrom:      o.Date.From,
		DateTo:        o.Date.To,
		Keywords:      keywordsJSON,
		Participants:  participants,
		PaymentStatus: o.PaymentStatus,
	}, nil
}

func fromRow(row *offerRow) (*offer.Offer, error) {
	var keywords []keyword.Keyword
	if len(row.Keywords) > 0 {
		if err := json.Unmarshal(row.Keywords, &keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords: %w", err)
		}
	}
	return &offer.Offer{
		ID:            row.ID,
		URL:           row.URL,
		Description:   row.Description,
		Budget:        row.Budget,
		Date:          offer.DateRange{From: row.DateFrom, To: row.DateTo},
		Keywords:      keywords,
		Participants:  row.Participants,
		PaymentStatus: row.PaymentStatus,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
