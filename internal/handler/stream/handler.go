package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/model/chat"
	aiService "github.com/farmai/farmai/backend/internal/service/ai"
	chatService "github.com/farmai/farmai/backend/internal/service/chat"
	"github.com/farmai/farmai/backend/pkg/utils"
)

// Handler streams assistant replies via Server-Sent Events.
type Handler struct {
	aiService *aiService.Service
	chatSvc   *chatService.Service
}

// New creates a new stream handler.
func New(aiSvc *aiService.Service, chatSvc *chatService.Service) *Handler {
	return &Handler{
		aiService: aiSvc,
		chatSvc:   chatSvc,
	}
}

// StreamResponse is one SSE frame.
type StreamResponse struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	Topic     string `json:"topic,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RegisterRoutes registers the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	query := r.URL.Query()
	userMessage := strings.TrimSpace(query.Get("message"))
	messageID := strings.TrimSpace(query.Get("messageId"))

	if userMessage == "" && messageID == "" {
		utils.RespondError(w, http.StatusBadRequest, "message or messageId query parameter is required")
		return
	}
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	if messageID != "" {
		recorded, err := h.chatSvc.FindMessage(r.Context(), sessionID, messageID)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		if recorded.Sender != chat.SenderUser {
			utils.RespondError(w, http.StatusBadRequest, "messageId must reference a user message")
			return
		}
	}

	if err := h.HandleStreamRequest(r.Context(), w, sessionID, userMessage, messageID); err != nil {
		zap.L().Warn("stream request failed", zap.String("session", sessionID), zap.Error(err))
	}
}

// HandleStreamRequest streams the reply to a user turn of a chat session.
// With an empty messageID, userMessage is recorded as a new user turn. With
// a messageID, the already recorded user message is answered instead.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage, messageID string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	session, err := h.chatSvc.GetSession(ctx, sessionID)
	if err != nil {
		h.sendSSEError(w, flusher, err.Error())
		return err
	}

	if messageID != "" {
		recorded, err := h.chatSvc.FindMessage(ctx, sessionID, messageID)
		if err != nil {
			h.sendSSEError(w, flusher, err.Error())
			return err
		}
		userMessage = recorded.Text
	} else if _, err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Text:      userMessage,
	}); err != nil {
		h.sendSSEError(w, flusher, err.Error())
		return err
	}

	messages, err := h.chatSvc.LoadTranscript(ctx, session.ID)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to load conversation: %v", err))
		return err
	}

	if err := h.chatSvc.Think(ctx); err != nil {
		zap.L().Debug("pending reply discarded", zap.String("session", sessionID), zap.Error(err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{Event: "start", SessionID: sessionID})

	response, err := h.dispatchResponse(ctx, w, flusher, sessionID, session.PlantName, messages, userMessage)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("reply generation failed: %v", err))
		return err
	}

	topic := string(advisor.Classify(userMessage))
	if _, err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderAssistant,
		Text:      response.Content,
		Topic:     topic,
	}); err != nil {
		zap.L().Warn("failed to save assistant message", zap.String("session", sessionID), zap.Error(err))
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Topic:     topic,
		Finished:  true,
	})

	zap.L().Info("stream completed", zap.String("session", sessionID), zap.String("plant", session.PlantName), zap.String("topic", topic))
	return nil
}

func (h *Handler) dispatchResponse(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID, subject string, messages []chat.Message, userMessage string) (*schema.Message, error) {
	if h.aiService.StreamingEnabled() {
		return h.streamResponse(ctx, w, flusher, sessionID, subject, messages, userMessage)
	}

	response, err := h.aiService.GenerateResponse(ctx, sessionID, subject, messages, userMessage)
	if err != nil {
		return nil, err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   response.Content,
	})
	return response, nil
}

func (h *Handler) streamResponse(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID, subject string, messages []chat.Message, userMessage string) (*schema.Message, error) {
	stream, err := h.aiService.StreamResponse(ctx, subject, messages, userMessage)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 32)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return nil, recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.sendSSE(w, flusher, StreamResponse{
				Event:     "delta",
				SessionID: sessionID,
				Content:   chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   response.Content,
	})
	return response, nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}
