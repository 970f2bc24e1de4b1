package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/model/plant"
	chatService "github.com/farmai/farmai/backend/internal/service/chat"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Handler serves the chat REST endpoints.
type Handler struct {
	chatSvc      *chatService.Service
	plantStore   plant.Store
	defaultPlant string
}

// New creates a chat handler. defaultPlant names the subject of sessions
// created without a plant.
func New(chatSvc *chatService.Service, plantStore plant.Store, defaultPlant string) *Handler {
	return &Handler{
		chatSvc:      chatSvc,
		plantStore:   plantStore,
		defaultPlant: defaultPlant,
	}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quick-replies", h.handleListQuickReplies)
	r.Post("/session", h.handleCreateSession)
	r.Post("/messages", h.handleSendMessage)
	r.Get("/sessions/{sessionID}/messages", h.handleTranscript)
	r.Post("/sessions/{sessionID}/quick-replies/{buttonID}", h.handleQuickReply)
	r.Post("/sessions/{sessionID}/photos", h.handleUploadPhoto)
}

func (h *Handler) handleListQuickReplies(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, advisor.QuickReplies())
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PlantID   string `json:"plantId"`
		PlantName string `json:"plantName"`
	}

	// An empty body asks for the default plant.
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plantID, plantName, ok := h.resolvePlant(payload.PlantID, payload.PlantName)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "plant not found")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context(), plantID, plantName)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

// resolvePlant picks the session subject: a catalog plant by id, then a
// free-text name (matched to the catalog when possible), then the default.
func (h *Handler) resolvePlant(plantID, plantName string) (string, string, bool) {
	plantID = strings.TrimSpace(plantID)
	if plantID != "" {
		p, ok := h.plantStore.FindByID(plantID)
		if !ok {
			return "", "", false
		}
		return p.ID, p.Name, true
	}

	plantName = strings.TrimSpace(plantName)
	if plantName == "" {
		plantName = h.defaultPlant
	}
	if p, ok := h.plantStore.FindByName(plantName); ok {
		return p.ID, p.Name, true
	}
	return "", plantName, true
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.chatSvc.Send(r.Context(), payload.SessionID, payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleQuickReply(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	buttonID := chi.URLParam(r, "buttonID")

	exchange, err := h.chatSvc.SendQuickReply(r.Context(), sessionID, buttonID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ImageURL string `json:"imageUrl"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.chatSvc.UploadPhoto(r.Context(), chi.URLParam(r, "sessionID"), payload.ImageURL)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, message)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrEmptyMessage),
		errors.Is(err, chatService.ErrInvalidSender),
		errors.Is(err, chatService.ErrPlantRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away while the assistant was thinking.
		zap.L().Debug("chat request cancelled", zap.Error(err))
	default:
		zap.L().Error("chat request failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "chat failed")
	}
}
