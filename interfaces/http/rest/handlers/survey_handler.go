package handlers

import (
	"net/http"

	"appprove-backend/application/commands"
	"appprove-backend/application/commands/bus"
	"appprove-backend/domain/survey"
	"appprove-backend/pkg/auth"
	"appprove-backend/pkg/common"

	"go.uber.org/zap"
)

// SurveyHandler serves the onboarding survey.
type SurveyHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(commandBus *bus.CommandBus, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{commandBus: commandBus, logger: logger}
}

// GetQuestions handles GET /survey/questions
func (h *SurveyHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, survey.Questions)
}

// SubmitResponse handles POST /survey/responses
func (h *SurveyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var resp survey.Response
	if err := common.ParseJSONBody(r, &resp, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	cmd := commands.SubmitSurveyCommand{UserID: user.ID, Response: &resp}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
