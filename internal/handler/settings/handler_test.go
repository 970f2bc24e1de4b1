package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/farmai/farmai/backend/internal/model/settings"
	settingsService "github.com/farmai/farmai/backend/internal/service/settings"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(settingsService.NewService()).RegisterRoutes(r)
	return r
}

func TestUpdateSettings(t *testing.T) {
	r := setupRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/settings", strings.NewReader(`{"darkMode":true,"language":"French"}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	var got model.Settings
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.DarkMode)
	assert.Equal(t, "French", got.Language)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Settings  model.Settings `json:"settings"`
		Languages []string       `json:"languages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, got, body.Settings)
	assert.Contains(t, body.Languages, "Swahili")
}

func TestUpdateSettingsRejectsLanguage(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/settings", strings.NewReader(`{"language":"Latin"}`)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestClearCache(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/settings/cache/clear", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "clearedAt")
}
