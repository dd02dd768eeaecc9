// Package handlers contains the HTTP request handlers for the
// marketplace API.
package handlers

import (
	"net/http"
	"strconv"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	cmdhandlers "appprove-backend/application/commands/handlers"
	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/domain/offer"
	"appprove-backend/infrastructure/observability"
	"appprove-backend/pkg/auth"
	"appprove-backend/pkg/common"
	apperrors "appprove-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OfferHandler serves the marketplace listing and the participant
// actions.
type OfferHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	logger     *zap.Logger
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	logger *zap.Logger,
) *OfferHandler {
	return &OfferHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		logger:     logger,
	}
}

// ListOffers handles GET /offers
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	query := queries.ListOffersQuery{
		Keyword: r.URL.Query().Get("keyword"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		query.Limit, _ = strconv.Atoi(limit)
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		query.Offset, _ = strconv.Atoi(offset)
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetOffer handles GET /offers/{offerID}
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := strconv.ParseInt(chi.URLParam(r, "offerID"), 10, 64)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid offer id")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetOfferQuery{OfferID: offerID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// JoinOffer handles POST /offers/{offerID}/participants
func (h *OfferHandler) JoinOffer(w http.ResponseWriter, r *http.Request) {
	h.changeParticipation(w, r, true)
}

// LeaveOffer handles DELETE /offers/{offerID}/participants
func (h *OfferHandler) LeaveOffer(w http.ResponseWriter, r *http.Request) {
	h.changeParticipation(w, r, false)
}

func (h *OfferHandler) changeParticipation(w http.ResponseWriter, r *http.Request, join bool) {
	offerID, err := strconv.ParseInt(chi.URLParam(r, "offerID"), 10, 64)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid offer id")
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	name := user.Username
	if name == "" {
		name = user.Email
	}

	var cmd bus.Command
	if join {
		cmd = commands.JoinOfferCommand{OfferID: offerID, UserName: name}
	} else {
		cmd = commands.LeaveOfferCommand{OfferID: offerID, UserName: name}
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// SubmitHandler runs the publish flow. The request body may carry the
// current form state; when absent, the stored draft is submitted.
type SubmitHandler struct {
	orchestrator *cmdhandlers.SubmitOfferOrchestrator
	queryBus     *querybus.QueryBus
	collector    *observability.Collector
	logger       *zap.Logger
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(
	orchestrator *cmdhandlers.SubmitOfferOrchestrator,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	logger *zap.Logger,
) *SubmitHandler {
	return &SubmitHandler{
		orchestrator: orchestrator,
		queryBus:     queryBus,
		collector:    collector,
		logger:       logger,
	}
}

// Submit handles POST /drafts/submit
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var draft *offer.Draft
	var body offer.Draft
	if err := common.ParseJSONBody(r, &body, 1<<20); err == nil {
		draft = &body
	} else {
		loaded, err := h.queryBus.Ask(r.Context(), queries.GetDraftQuery{Owner: user.ID})
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		var ok bool
		if draft, ok = loaded.(*offer.Draft); !ok {
			common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Unexpected draft type")
			return
		}
	}

	result, err := h.orchestrator.Handle(r.Context(), commands.SubmitOfferCommand{
		Owner:  user.ID,
		UserID: user.ID,
		Draft:  draft,
	})
	if err != nil {
		h.collector.SubmitFailures.WithLabelValues(string(apperrors.AsAppError(err).Type)).Inc()
		common.RespondAppError(w, err)
		return
	}

	if result.Created {
		h.collector.OffersCreated.Inc()
	} else {
		h.collector.OffersUpdated.Inc()
	}
	common.RespondJSON(w, http.StatusOK, result)
}
