package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/model/plant"
	"github.com/farmai/farmai/backend/internal/model/scan"
	"github.com/farmai/farmai/backend/internal/service/ai"
	chatservice "github.com/farmai/farmai/backend/internal/service/chat"
	settingsservice "github.com/farmai/farmai/backend/internal/service/settings"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	aiSvc, err := ai.NewService(context.Background(), config.AssistantConfig{StreamResponse: true})
	require.NoError(t, err)

	return NewRouter(Deps{
		Plants:          plant.NewMemoryStore(plant.Seed()),
		Scans:           scan.NewMemoryStore(scan.Seed()),
		Chat:            chatservice.NewService(aiSvc, chatservice.WithReplyDelay(0)),
		AI:              aiSvc,
		Settings:        settingsservice.NewService(),
		DefaultPlant:    config.DefaultPlantName,
		WeatherLocation: config.DefaultWeatherLocation,
	})
}

func TestRouterChatFlow(t *testing.T) {
	r := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"plantName":"Corn"}`)))
	require.Equal(t, http.StatusCreated, resp.Code)

	var session struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(`{"sessionId":"`+session.ID+`","text":"hello"}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	var exchange chatservice.Exchange
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exchange))
	assert.Equal(t, advisor.Respond("hello", "Corn"), exchange.Reply.Text)
	assert.Contains(t, exchange.Reply.Text, "Corn")
}

func TestRouterServesEveryArea(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/healthz",
		"/api/plants",
		"/api/plants/tomato-plant",
		"/api/quick-replies",
		"/api/insights/market",
		"/api/insights/weather",
		"/api/scans",
		"/api/settings",
	} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"), path)
	}
}
