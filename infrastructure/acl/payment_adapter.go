package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"appprove-backend/domain/offer"
	"appprove-backend/infrastructure/observability"
	appErrors "appprove-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// PaymentAdapter implements ports.PaymentService against the payment
// provider's intent API.
type PaymentAdapter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	collector  *observability.Collector
	logger     *zap.Logger
}

// NewPaymentAdapter creates a payment adapter for the given provider
// endpoint.
func NewPaymentAdapter(baseURL, apiKey string, collector *observability.Collector, logger *zap.Logger) *PaymentAdapter {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-api",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &PaymentAdapter{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    breaker,
		collector:  collector,
		logger:     logger,
	}
}

type paymentIntentRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	OfferID        int64  `json:"offer_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	CustomerRef    string `json:"customer_ref"`
	Description    string `json:"description"`
}

// CreateIntent starts the payment flow for an offer. Each call carries a
// fresh idempotency key so provider-side retries never double-charge.
func (a *PaymentAdapter) CreateIntent(ctx context.Context, o *offer.Offer, userID string) error {
	payload := paymentIntentRequest{
		IdempotencyKey: uuid.New().String(),
		OfferID:        o.ID,
		Amount:         o.Budget,
		Currency:       "usd",
		CustomerRef:    userID,
		Description:    fmt.Sprintf("Audit offer for %s", o.URL),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return appErrors.NewInternalError("failed to encode payment intent").WithCause(err)
	}

	_, err = a.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			a.baseURL+"/v1/intents", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+a.apiKey)

		resp, err := a.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("payment api returned status %d: %s", resp.StatusCode, detail)
		}
		return nil, nil
	})
	if err != nil {
		a.collector.PaymentIntents.WithLabelValues("failed").Inc()
		return appErrors.NewExternalError("failed to create payment intent", err)
	}

	a.collector.PaymentIntents.WithLabelValues("created").Inc()
	a.logger.Info("Payment intent created",
		zap.Int64("offerId", o.ID), zap.String("userId", userID))
	return nil
}
