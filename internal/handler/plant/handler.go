package plant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmai/farmai/backend/internal/model/plant"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Handler serves the plant catalog.
type Handler struct {
	plants plant.Store
}

// New creates a plant handler.
func New(plants plant.Store) *Handler {
	return &Handler{plants: plants}
}

// RegisterRoutes registers the plant routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/plants", h.handleListPlants)
	r.Get("/plants/{plantID}", h.handleGetPlant)
}

func (h *Handler) handleListPlants(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.plants.List())
}

func (h *Handler) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	p, ok := h.plants.FindByID(chi.URLParam(r, "plantID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "plant not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}
