package handlers

import (
	"net/http"

	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"
	"appprove-backend/pkg/auth"
	"appprove-backend/pkg/common"

	"go.uber.org/zap"
)

// RepositoryHandler lists the signed-in seller's repositories so the
// publish page can offer them as audit targets.
type RepositoryHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *RepositoryHandler {
	return &RepositoryHandler{queryBus: queryBus, logger: logger}
}

// ListRepositories handles GET /repositories
func (h *RepositoryHandler) ListRepositories(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	if user.Username == "" {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Account has no linked code-host username")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListRepositoriesQuery{Username: user.Username})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
