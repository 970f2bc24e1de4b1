package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/model/chat"
	"github.com/farmai/farmai/backend/internal/service/ai"
	chatservice "github.com/farmai/farmai/backend/internal/service/chat"
)

type frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

func startServer(t *testing.T, delay time.Duration) (*httptest.Server, *chatservice.Service) {
	t.Helper()
	aiSvc, err := ai.NewService(context.Background(), config.AssistantConfig{})
	require.NoError(t, err)

	chatSvc := chatservice.NewService(aiSvc, chatservice.WithReplyDelay(delay), chatservice.WithGreeting(""))
	r := chi.NewRouter()
	NewWebSocketHandler(chatSvc).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, chatSvc
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	connected := readFrame(t, conn)
	require.Equal(t, "connected", connected.Type)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func sendFrame(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(inboundMessage{Type: msgType, Data: raw}))
}

func TestWebSocketTextExchange(t *testing.T) {
	srv, chatSvc := startServer(t, 0)
	session, err := chatSvc.CreateSession(context.Background(), "", "Corn")
	require.NoError(t, err)

	conn := dial(t, srv, session.ID)
	sendFrame(t, conn, "text", TextMessage{Text: "When will it rain?"})

	assert.Equal(t, "typing", readFrame(t, conn).Type)
	reply := readFrame(t, conn)
	require.Equal(t, "message", reply.Type)

	var exchange chatservice.Exchange
	require.NoError(t, json.Unmarshal(reply.Data, &exchange))
	assert.Equal(t, "When will it rain?", exchange.Message.Text)
	assert.Equal(t, advisor.Respond("When will it rain?", "Corn"), exchange.Reply.Text)
}

func TestWebSocketQuickReplyAndPhoto(t *testing.T) {
	srv, chatSvc := startServer(t, 0)
	session, err := chatSvc.CreateSession(context.Background(), "", "Rice")
	require.NoError(t, err)

	conn := dial(t, srv, session.ID)

	sendFrame(t, conn, "quick_reply", QuickReplyMessage{ButtonID: "sunlight"})
	assert.Equal(t, "typing", readFrame(t, conn).Type)
	reply := readFrame(t, conn)
	var exchange chatservice.Exchange
	require.NoError(t, json.Unmarshal(reply.Data, &exchange))
	assert.Equal(t, "sunlight", exchange.Reply.Topic)

	sendFrame(t, conn, "photo", PhotoMessage{ImageURL: "https://example.com/rice.jpg"})
	photo := readFrame(t, conn)
	require.Equal(t, "message", photo.Type)
	require.NoError(t, json.Unmarshal(photo.Data, &exchange))
	assert.Equal(t, "https://example.com/rice.jpg", exchange.Message.ImageURL)

	sendFrame(t, conn, "audio", map[string]string{})
	assert.Equal(t, "error", readFrame(t, conn).Type)
}

func TestWebSocketCloseDiscardsPendingReply(t *testing.T) {
	srv, chatSvc := startServer(t, 200*time.Millisecond)
	ctx := context.Background()
	session, err := chatSvc.CreateSession(ctx, "", "Wheat")
	require.NoError(t, err)

	conn := dial(t, srv, session.ID)
	sendFrame(t, conn, "text", TextMessage{Text: "water?"})
	require.Equal(t, "typing", readFrame(t, conn).Type)
	require.NoError(t, conn.Close())

	time.Sleep(400 * time.Millisecond)

	transcript, err := chatSvc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, chat.SenderUser, transcript[0].Sender)
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv, _ := startServer(t, 0)

	resp, err := http.Get(srv.URL + "/ws/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
