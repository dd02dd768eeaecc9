package handlers

import (
	"net/http"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/domain/keyword"
	"appprove-backend/infrastructure/observability"
	"appprove-backend/pkg/common"
	"appprove-backend/pkg/utils"

	"go.uber.org/zap"
)

// KeywordHandler serves the shared keyword catalog.
type KeywordHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	logger     *zap.Logger
}

// NewKeywordHandler creates a new keyword handler
func NewKeywordHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	logger *zap.Logger,
) *KeywordHandler {
	return &KeywordHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		logger:     logger,
	}
}

// ListKeywords handles GET /keywords
func (h *KeywordHandler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListKeywordsQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// RegisterKeywordRequest is the request body for registering a keyword.
type RegisterKeywordRequest struct {
	Label string `json:"label" validate:"required,min=1,max=50"`
}

// RegisterKeyword handles POST /keywords. The registered keyword's value
// is derived from the label, so the response can be built without a
// read-back.
func (h *KeywordHandler) RegisterKeyword(w http.ResponseWriter, r *http.Request) {
	var req RegisterKeywordRequest
	if err := common.ParseJSONBody(r, &req, 4096); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Validation error: "+err.Error())
		return
	}

	cmd := commands.RegisterKeywordCommand{Label: req.Label}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	registered, err := keyword.New(req.Label)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.collector.KeywordsRegistered.Inc()
	common.RespondJSON(w, http.StatusCreated, registered)
}
