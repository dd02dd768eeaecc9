package handlers

import (
	"context"
	"time"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/ports"
	"appprove-backend/domain/events"

	"go.uber.org/zap"
)

// RegisterKeywordHandler handles RegisterKeywordCommand.
type RegisterKeywordHandler struct {
	catalog  ports.KeywordCatalog
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewRegisterKeywordHandler creates a new handler instance
func NewRegisterKeywordHandler(catalog ports.KeywordCatalog, eventBus ports.EventBus, logger *zap.Logger) *RegisterKeywordHandler {
	return &RegisterKeywordHandler{catalog: catalog, eventBus: eventBus, logger: logger}
}

// Handle implements bus.CommandHandler. A duplicate value is rejected by
// the remote catalog and propagated as-is; nothing is deduplicated here.
func (h *RegisterKeywordHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.RegisterKeywordCommand)
	if !ok {
		return bus.ErrWrongCommandType
	}

	registered, err := h.catalog.Register(ctx, c.Label)
	if err != nil {
		return err
	}

	h.logger.Info("Keyword registered",
		zap.String("value", registered.Value),
		zap.String("label", registered.Label),
	)

	if h.eventBus != nil {
		event := events.NewKeywordRegistered(registered.Value, registered.Label, time.Now())
		if err := h.eventBus.Publish(ctx, event); err != nil {
			h.logger.Warn("Failed to publish keyword event", zap.Error(err))
		}
	}
	return nil
}
