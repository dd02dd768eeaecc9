package handlers

import (
	"net/http"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/domain/offer"
	"appprove-backend/infrastructure/observability"
	"appprove-backend/pkg/auth"
	"appprove-backend/pkg/common"

	"go.uber.org/zap"
)

// DraftHandler serves the publish page's stored draft.
type DraftHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	logger     *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	logger *zap.Logger,
) *DraftHandler {
	return &DraftHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		logger:     logger,
	}
}

// GetDraft handles GET /drafts
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetDraftQuery{Owner: user.ID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// SaveDraft handles PUT /drafts. Partial drafts are accepted as-is;
// validation only runs at submit.
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var draft offer.Draft
	if err := common.ParseJSONBody(r, &draft, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	cmd := commands.SaveDraftCommand{Owner: user.ID, Draft: &draft}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.collector.DraftsSaved.Inc()
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ClearDraft handles DELETE /drafts
func (h *DraftHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	cmd := commands.ClearDraftCommand{Owner: user.ID}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.collector.DraftsCleared.Inc()
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
