package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farmai/farmai/backend/internal/handler/chat"
	"github.com/farmai/farmai/backend/internal/handler/insight"
	"github.com/farmai/farmai/backend/internal/handler/plant"
	"github.com/farmai/farmai/backend/internal/handler/realtime"
	"github.com/farmai/farmai/backend/internal/handler/settings"
	"github.com/farmai/farmai/backend/internal/handler/stream"
	middlewarePkg "github.com/farmai/farmai/backend/internal/middleware"
	plantModel "github.com/farmai/farmai/backend/internal/model/plant"
	"github.com/farmai/farmai/backend/internal/model/scan"
	aiService "github.com/farmai/farmai/backend/internal/service/ai"
	chatService "github.com/farmai/farmai/backend/internal/service/chat"
	settingsService "github.com/farmai/farmai/backend/internal/service/settings"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Plants          plantModel.Store
	Scans           scan.Store
	Chat            *chatService.Service
	AI              *aiService.Service
	Settings        *settingsService.Service
	DefaultPlant    string
	WeatherLocation string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		plant.New(deps.Plants).RegisterRoutes(api)
		chat.New(deps.Chat, deps.Plants, deps.DefaultPlant).RegisterRoutes(api)
		insight.New(deps.Scans, deps.WeatherLocation).RegisterRoutes(api)
		settings.New(deps.Settings).RegisterRoutes(api)
		stream.New(deps.AI, deps.Chat).RegisterRoutes(api)
		realtime.NewWebSocketHandler(deps.Chat).RegisterRoutes(api)
	})

	return r
}
