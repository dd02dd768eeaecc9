package handlers

import (
	"context"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/ports"
	apperrors "appprove-backend/pkg/errors"

	"go.uber.org/zap"
)

// SubmitSurveyHandler validates and stores onboarding survey responses.
type SubmitSurveyHandler struct {
	surveys ports.SurveyRepository
	logger  *zap.Logger
}

// NewSubmitSurveyHandler creates a new handler instance
func NewSubmitSurveyHandler(surveys ports.SurveyRepository, logger *zap.Logger) *SubmitSurveyHandler {
	return &SubmitSurveyHandler{surveys: surveys, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *SubmitSurveyHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.SubmitSurveyCommand)
	if !ok {
		return bus.ErrWrongCommandType
	}

	if err := c.Response.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	if err := h.surveys.SaveResponse(ctx, c.UserID, c.Response); err != nil {
		return apperrors.NewRemoteWriteError("save survey response", err)
	}

	h.logger.Info("Survey response stored", zap.String("userID", c.UserID))
	return nil
}
