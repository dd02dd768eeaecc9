package handlers

import (
	"context"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/ports"

	"go.uber.org/zap"
)

// SaveDraftHandler persists form state so a reload never loses progress.
// Partial drafts are allowed; only submit runs field validation.
type SaveDraftHandler struct {
	drafts ports.DraftStore
	logger *zap.Logger
}

// NewSaveDraftHandler creates a new handler instance
func NewSaveDraftHandler(drafts ports.DraftStore, logger *zap.Logger) *SaveDraftHandler {
	return &SaveDraftHandler{drafts: drafts, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *SaveDraftHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.SaveDraftCommand)
	if !ok {
		return bus.ErrWrongCommandType
	}

	if err := h.drafts.Save(ctx, c.Owner, c.Draft); err != nil {
		return err
	}
	h.logger.Debug("Draft saved", zap.String("owner", c.Owner))
	return nil
}

// ClearDraftHandler handles ClearDraftCommand.
type ClearDraftHandler struct {
	drafts ports.DraftStore
	logger *zap.Logger
}

// NewClearDraftHandler creates a new handler instance
func NewClearDraftHandler(drafts ports.DraftStore, logger *zap.Logger) *ClearDraftHandler {
	return &ClearDraftHandler{drafts: drafts, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *ClearDraftHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.ClearDraftCommand)
	if !ok {
		return bus.ErrWrongCommandType
	}

	if err := h.drafts.Clear(ctx, c.Owner); err != nil {
		return err
	}
	h.logger.Debug("Draft cleared", zap.String("owner", c.Owner))
	return nil
}
