package handlers

import (
	"context"
	"time"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/ports"
	"appprove-backend/domain/events"
	apperrors "appprove-backend/pkg/errors"

	"go.uber.org/zap"
)

// ParticipationHandler handles joining and leaving offers. The remote
// store keeps the participant list; last write wins across concurrent
// writers.
type ParticipationHandler struct {
	offers   ports.OfferRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewParticipationHandler creates a new handler instance
func NewParticipationHandler(offers ports.OfferRepository, eventBus ports.EventBus, logger *zap.Logger) *ParticipationHandler {
	return &ParticipationHandler{offers: offers, eventBus: eventBus, logger: logger}
}

// Handle implements bus.CommandHandler for both participation commands.
func (h *ParticipationHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.JoinOfferCommand:
		return h.join(ctx, c)
	case commands.LeaveOfferCommand:
		return h.leave(ctx, c)
	default:
		return bus.ErrWrongCommandType
	}
}

func (h *ParticipationHandler) join(ctx context.Context, cmd commands.JoinOfferCommand) error {
	o, err := h.offers.GetByID(ctx, cmd.OfferID)
	if err != nil {
		return err
	}
	if o == nil {
		return apperrors.NewNotFoundError("offer")
	}

	if err := o.Join(cmd.UserName); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	if err := h.offers.UpdateParticipants(ctx, cmd.OfferID, o.Participants); err != nil {
		return apperrors.NewRemoteWriteError("join offer", err)
	}

	h.logger.Info("Participation registered",
		zap.Int64("offerID", cmd.OfferID),
		zap.String("name", cmd.UserName),
	)

	if h.eventBus != nil {
		event := events.NewParticipantJoined(cmd.OfferID, cmd.UserName, time.Now())
		if err := h.eventBus.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish participation event", zap.Error(err))
		}
	}
	return nil
}

func (h *ParticipationHandler) leave(ctx context.Context, cmd commands.LeaveOfferCommand) error {
	o, err := h.offers.GetByID(ctx, cmd.OfferID)
	if err != nil {
		return err
	}
	if o == nil {
		return apperrors.NewNotFoundError("offer")
	}

	if err := o.Leave(cmd.UserName); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	if err := h.offers.UpdateParticipants(ctx, cmd.OfferID, o.Participants); err != nil {
		return apperrors.NewRemoteWriteError("leave offer", err)
	}

	h.logger.Info("Participation cancelled",
		zap.Int64("offerID", cmd.OfferID),
		zap.String("name", cmd.UserName),
	)
	return nil
}
