package handlers

import (
	"context"
	"sync"
	"time"

	"appprove-backend/application/commands"
	"appprove-backend/application/ports"
	"appprove-backend/domain/events"
	"appprove-backend/domain/offer"
	apperrors "appprove-backend/pkg/errors"

	"go.uber.org/zap"
)

// SubmitResult reports a successful submit attempt.
type SubmitResult struct {
	OfferID int64 `json:"id"`
	Created bool  `json:"created"`
}

// SubmitOfferOrchestrator runs the submit state machine:
//
//	Idle -> Validating -> (Invalid | Persisting) -> (Succeeded | Failed)
//
// The durable draft save always happens before the remote write, so a
// failed write never loses the seller's edits. On success the payment
// intent is started and the draft cleared; on failure the draft —
// including any captured record id — survives untouched.
type SubmitOfferOrchestrator struct {
	drafts    ports.DraftStore
	offers    ports.OfferRepository
	payments  ports.PaymentService
	eventBus  ports.EventBus
	logger    *zap.Logger
	maxBudget func() float64

	// processing guards against a double submit per owner. Best effort,
	// matching the form's disabled-button semantics, not a hard mutex.
	processing sync.Map
}

// NewSubmitOfferOrchestrator creates the orchestrator. maxBudget may be
// nil to use the domain default.
func NewSubmitOfferOrchestrator(
	drafts ports.DraftStore,
	offers ports.OfferRepository,
	payments ports.PaymentService,
	eventBus ports.EventBus,
	maxBudget func() float64,
	logger *zap.Logger,
) *SubmitOfferOrchestrator {
	if maxBudget == nil {
		maxBudget = func() float64 { return offer.DefaultMaxBudget }
	}
	return &SubmitOfferOrchestrator{
		drafts:    drafts,
		offers:    offers,
		payments:  payments,
		eventBus:  eventBus,
		logger:    logger,
		maxBudget: maxBudget,
	}
}

// Handle executes one submit attempt.
func (o *SubmitOfferOrchestrator) Handle(ctx context.Context, cmd commands.SubmitOfferCommand) (*SubmitResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if _, inFlight := o.processing.LoadOrStore(cmd.Owner, true); inFlight {
		return nil, apperrors.NewConflictError("a submit is already in progress")
	}
	defer o.processing.Delete(cmd.Owner)

	now := time.Now()
	draft := cmd.Draft
	draft.Normalize(now)

	if fieldErrs := draft.Validate(now, o.maxBudget()); fieldErrs != nil {
		return nil, apperrors.NewValidationError("please correct the highlighted fields", fieldErrs)
	}

	// Snapshot the validated draft before touching the remote store.
	if err := o.drafts.Save(ctx, cmd.Owner, draft); err != nil {
		return nil, apperrors.NewInternalError("failed to save draft").WithCause(err)
	}

	payload := offer.FromDraft(draft)
	created := draft.IsNew()

	if created {
		id, err := o.offers.Create(ctx, payload)
		if err != nil {
			o.logger.Error("Offer creation failed, draft preserved",
				zap.String("owner", cmd.Owner),
				zap.Error(err),
			)
			return nil, apperrors.NewRemoteWriteError("create offer", err)
		}
		draft.RecordID = id
		payload.ID = id
		// Capture the returned id so a later payment failure resubmits
		// as an update instead of a duplicate create.
		if err := o.drafts.Save(ctx, cmd.Owner, draft); err != nil {
			o.logger.Warn("Failed to persist returned offer id", zap.Error(err))
		}
	} else {
		if err := o.offers.Update(ctx, draft.RecordID, payload); err != nil {
			o.logger.Error("Offer update failed, draft preserved",
				zap.String("owner", cmd.Owner),
				zap.Int64("offerID", draft.RecordID),
				zap.Error(err),
			)
			return nil, apperrors.NewRemoteWriteError("update offer", err)
		}
		payload.ID = draft.RecordID
	}

	o.publishOutcome(ctx, cmd.UserID, payload, created, now)

	// Payment is fire-and-forget for this flow: its failure is surfaced
	// elsewhere and never rolls back the offer write.
	if err := o.payments.CreateIntent(ctx, payload, cmd.UserID); err != nil {
		o.logger.Warn("Payment intent creation failed",
			zap.Int64("offerID", payload.ID),
			zap.Error(err),
		)
	}

	if err := o.drafts.Clear(ctx, cmd.Owner); err != nil {
		o.logger.Warn("Failed to clear draft after submit", zap.Error(err))
	}

	return &SubmitResult{OfferID: payload.ID, Created: created}, nil
}

func (o *SubmitOfferOrchestrator) publishOutcome(ctx context.Context, userID string, payload *offer.Offer, created bool, now time.Time) {
	if o.eventBus == nil {
		return
	}
	var event events.DomainEvent
	if created {
		event = events.NewOfferPublished(payload.ID, userID, payload.URL, payload.Budget, now)
	} else {
		event = events.NewOfferUpdated(payload.ID, userID, now)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		o.logger.Warn("Failed to publish offer event", zap.Error(err))
	}
}
