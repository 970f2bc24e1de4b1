package insight

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/farmai/farmai/backend/internal/model/insight"
	"github.com/farmai/farmai/backend/internal/model/scan"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Handler serves the home screen widgets and the scans gallery.
type Handler struct {
	scans           scan.Store
	defaultLocation string
}

// New creates an insight handler.
func New(scans scan.Store, defaultLocation string) *Handler {
	return &Handler{scans: scans, defaultLocation: defaultLocation}
}

// RegisterRoutes registers the insight and scan routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/insights/market", h.handleMarket)
	r.Get("/insights/weather", h.handleWeather)
	r.Get("/scans", h.handleListScans)
	r.Get("/scans/{scanID}", h.handleGetScan)
}

func (h *Handler) handleMarket(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, insight.Market())
}

func (h *Handler) handleWeather(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		location = h.defaultLocation
	}
	utils.RespondJSON(w, http.StatusOK, insight.Weather(location))
}

func (h *Handler) handleListScans(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.scans.List())
}

func (h *Handler) handleGetScan(w http.ResponseWriter, r *http.Request) {
	item, ok := h.scans.FindByID(chi.URLParam(r, "scanID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "scan not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
