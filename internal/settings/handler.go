package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/markitup/markitup-api/internal/auth"
	"github.com/markitup/markitup-api/internal/httputil"
	"github.com/markitup/markitup-api/internal/logging"
	"github.com/markitup/markitup-api/internal/user"
)

// Store is the settings persistence the handlers depend on.
type Store interface {
	Get(ctx context.Context, userID user.ID) (*Settings, error)
	Upsert(ctx context.Context, userID user.ID, preferences map[string]any) (*Settings, error)
}

// Handler contains HTTP handlers for per-user settings
type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// UpdateRequest represents the settings update body
type UpdateRequest struct {
	Preferences map[string]any `json:"preferences"`
}

// Get returns the caller's settings
// @Summary      Get settings
// @Description  Return the caller's preference document; empty before the first write
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} View
// @Failure      401 {object} auth.ErrorResponse
// @Router       /api/settings [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	s, err := h.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// No record yet is a normal state before the first write.
			httputil.RespondJSON(w, View{Preferences: map[string]any{}}, http.StatusOK)
			return
		}
		logger.Error("failed to get settings", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to get settings", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, s.AsView(), http.StatusOK)
}

// Update overwrites the caller's settings
// @Summary      Update settings
// @Description  Replace the caller's preferences wholesale (upsert, last write wins)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateRequest true "New preferences"
// @Success      200 {object} View
// @Failure      400 {object} auth.ErrorResponse "Invalid body"
// @Failure      401 {object} auth.ErrorResponse
// @Failure      500 {object} auth.ErrorResponse
// @Router       /api/settings [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid settings request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	if req.Preferences == nil {
		req.Preferences = map[string]any{}
	}

	s, err := h.store.Upsert(r.Context(), userID, req.Preferences)
	if err != nil {
		logger.Error("failed to update settings", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to update settings", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("settings updated", "user_id", userID.String())

	httputil.RespondJSON(w, s.AsView(), http.StatusOK)
}
