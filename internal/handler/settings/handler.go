package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	model "github.com/farmai/farmai/backend/internal/model/settings"
	settingsService "github.com/farmai/farmai/backend/internal/service/settings"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Handler serves the settings screen.
type Handler struct {
	svc *settingsService.Service
}

// New creates a settings handler.
func New(svc *settingsService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Patch("/settings", h.handleUpdate)
	r.Post("/settings/cache/clear", h.handleClearCache)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"settings":  h.svc.Get(r.Context()),
		"languages": model.Languages,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), patch)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, settingsService.ErrUnsupportedLanguage) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleClearCache(w http.ResponseWriter, r *http.Request) {
	clearedAt := h.svc.ClearCache(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]any{"clearedAt": clearedAt})
}
