package ai

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/model/chat"
)

func newTestService(t *testing.T, stream bool) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), config.AssistantConfig{StreamResponse: stream, HistoryLimit: 4})
	require.NoError(t, err)
	return svc
}

func drain(t *testing.T, stream *schema.StreamReader[*schema.Message]) []*schema.Message {
	t.Helper()
	defer stream.Close()

	var chunks []*schema.Message
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return chunks
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
}

func TestScriptedModelGenerate(t *testing.T) {
	m := NewScriptedModel()

	out, err := m.Generate(context.Background(), []*schema.Message{
		schema.SystemMessage("Corn"),
		schema.UserMessage("how much water?"),
		schema.AssistantMessage("earlier answer", nil),
		schema.UserMessage("hello"),
	})
	require.NoError(t, err)

	assert.Equal(t, schema.Assistant, out.Role)
	assert.Equal(t, advisor.Respond("hello", "Corn"), out.Content)
}

func TestScriptedModelDefaultsSubject(t *testing.T) {
	out, err := NewScriptedModel().Generate(context.Background(), []*schema.Message{schema.UserMessage("hello")})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "your "+DefaultSubject+" crop")
}

func TestScriptedModelStreamConcatenatesToGenerate(t *testing.T) {
	m := NewScriptedModel()
	input := []*schema.Message{schema.SystemMessage("Rice"), schema.UserMessage("any pest problems?")}

	stream, err := m.Stream(context.Background(), input)
	require.NoError(t, err)
	chunks := drain(t, stream)
	require.Greater(t, len(chunks), 1)

	joined, err := schema.ConcatMessages(chunks)
	require.NoError(t, err)

	full, err := m.Generate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, full.Content, joined.Content)
}

func TestScriptedModelHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScriptedModel().Generate(ctx, []*schema.Message{schema.UserMessage("water")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScriptedModelBindTools(t *testing.T) {
	m := NewScriptedModel()
	assert.NoError(t, m.BindTools(nil))
	assert.ErrorIs(t, m.BindTools([]*schema.ToolInfo{{Name: "search"}}), ErrToolsUnsupported)
}

func TestServiceGenerateResponse(t *testing.T) {
	svc := newTestService(t, false)

	msg, err := svc.GenerateResponse(context.Background(), "s1", "Tomato Plant", nil, "My leaves are turning yellow, is it a disease?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Content, "Based on your Tomato Plant image"))
}

func TestServiceQueryWithBraces(t *testing.T) {
	svc := newTestService(t, false)

	msg, err := svc.GenerateResponse(context.Background(), "s1", "Corn", nil, "what about {rain}?")
	require.NoError(t, err)
	assert.Equal(t, advisor.Respond("what about {rain}?", "Corn"), msg.Content)
}

func TestServiceStreamResponse(t *testing.T) {
	svc := newTestService(t, true)
	require.True(t, svc.StreamingEnabled())

	stream, err := svc.StreamResponse(context.Background(), "Wheat", nil, "sell price?")
	require.NoError(t, err)

	joined, err := schema.ConcatMessages(drain(t, stream))
	require.NoError(t, err)
	assert.Equal(t, advisor.Respond("sell price?", "Wheat"), joined.Content)
}

func TestServiceStreamDisabled(t *testing.T) {
	svc := newTestService(t, false)

	_, err := svc.StreamResponse(context.Background(), "Wheat", nil, "hello")
	assert.Error(t, err)
}

func TestServiceReply(t *testing.T) {
	svc := newTestService(t, false)

	reply, err := svc.Reply(context.Background(), "Corn", nil, "Weather next week?")
	require.NoError(t, err)
	assert.Equal(t, string(advisor.Weather), reply.Topic)
	assert.Equal(t, advisor.Respond("Weather next week?", "Corn"), reply.Text)
}

func TestBuildHistoryMessages(t *testing.T) {
	svc := newTestService(t, false)

	var messages []chat.Message
	for i := 0; i < 3; i++ {
		messages = append(messages,
			chat.Message{Sender: chat.SenderUser, Text: "q"},
			chat.Message{Sender: chat.SenderAssistant, Text: "a"},
		)
	}
	messages = append(messages, chat.Message{Sender: chat.SenderUser, Text: "pending"})

	history := svc.buildHistoryMessages(messages, "pending")
	require.Len(t, history, 4)
	assert.Equal(t, schema.User, history[0].Role)
	assert.Equal(t, schema.Assistant, history[3].Role)

	assert.Nil(t, svc.buildHistoryMessages(nil, "pending"))
}
