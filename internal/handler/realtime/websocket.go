package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	chatservice "github.com/farmai/farmai/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler runs chat sessions over a websocket.
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a websocket chat handler.
func NewWebSocketHandler(chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// TextMessage is typed user input.
type TextMessage struct {
	Text string `json:"text"`
}

// QuickReplyMessage is a quick reply button press.
type QuickReplyMessage struct {
	ButtonID string `json:"buttonId"`
}

// PhotoMessage attaches a photo to the conversation.
type PhotoMessage struct {
	ImageURL string `json:"imageUrl"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := zap.L().With(zap.String("session", sessionID))
	log.Info("websocket connected")

	// Cancelled when the client goes away, which discards a pending reply.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	inbound := make(chan inboundMessage)
	go h.readLoop(ctx, cancel, conn, inbound)
	go h.pingLoop(ctx, conn)

	h.send(conn, "connected", sessionID, map[string]any{
		"plant":        session.PlantName,
		"quickReplies": advisor.QuickReplies(),
	})

	for {
		select {
		case <-ctx.Done():
			log.Info("websocket closed")
			return
		case msg := <-inbound:
			if msg.SessionID != "" && msg.SessionID != sessionID {
				h.sendError(conn, sessionID, "session mismatch")
				continue
			}
			if err := h.handleMessage(ctx, conn, sessionID, msg); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Debug("pending reply discarded")
					return
				}
				h.sendError(conn, sessionID, err.Error())
			}
		}
	}
}

func (h *WebSocketHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- inboundMessage) {
	defer cancel()
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("websocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		select {
		case out <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, conn *websocket.Conn, sessionID string, msg inboundMessage) error {
	switch msg.Type {
	case "text":
		var payload TextMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return errors.New("invalid text payload")
		}
		h.send(conn, "typing", sessionID, nil)
		exchange, err := h.chatSvc.Send(ctx, sessionID, payload.Text)
		if err != nil {
			return err
		}
		h.send(conn, "message", sessionID, exchange)
	case "quick_reply":
		var payload QuickReplyMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return errors.New("invalid quick reply payload")
		}
		h.send(conn, "typing", sessionID, nil)
		exchange, err := h.chatSvc.SendQuickReply(ctx, sessionID, payload.ButtonID)
		if err != nil {
			return err
		}
		h.send(conn, "message", sessionID, exchange)
	case "photo":
		var payload PhotoMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return errors.New("invalid photo payload")
		}
		saved, err := h.chatSvc.UploadPhoto(ctx, sessionID, payload.ImageURL)
		if err != nil {
			return err
		}
		h.send(conn, "message", sessionID, chatservice.Exchange{Message: saved})
	default:
		return errors.New("unsupported message type: " + msg.Type)
	}
	return nil
}

func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msgType, sessionID string, data interface{}) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(outgoingMessage{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}); err != nil {
		zap.L().Debug("websocket write failed", zap.String("type", msgType), zap.Error(err))
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, "error", sessionID, map[string]string{"message": message})
}
