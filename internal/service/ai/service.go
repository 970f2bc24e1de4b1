package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/model/chat"
	chatservice "github.com/farmai/farmai/backend/internal/service/chat"
)

// Service runs the scripted assistant through an eino chain.
type Service struct {
	cfg   config.AssistantConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

var _ chatservice.Replier = (*Service)(nil)

// NewService compiles the template and scripted model into a chain.
func NewService(ctx context.Context, cfg config.AssistantConfig) (*Service, error) {
	chatModel := NewScriptedModel()

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{subject}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile assistant chain: %w", err)
	}

	return &Service{
		cfg:   cfg,
		chain: runnable,
	}, nil
}

// StreamingEnabled reports whether SSE replies are sent word by word.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// GenerateResponse produces the complete assistant reply.
func (s *Service) GenerateResponse(ctx context.Context, sessionID, subject string, messages []chat.Message, userMessage string) (*schema.Message, error) {
	input := s.buildChainInput(subject, messages, userMessage)

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run assistant chain: %w", err)
	}

	zap.L().Debug("generated reply",
		zap.String("session", sessionID),
		zap.String("plant", subject),
		zap.Int("length", len(response.Content)),
	)
	return response, nil
}

// StreamResponse streams reply chunks via the chain.
func (s *Service) StreamResponse(ctx context.Context, subject string, messages []chat.Message, userMessage string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(subject, messages, userMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to stream assistant chain output: %w", err)
	}
	return stream, nil
}

// Reply implements chatservice.Replier.
func (s *Service) Reply(ctx context.Context, subject string, history []chat.Message, text string) (chatservice.Reply, error) {
	response, err := s.GenerateResponse(ctx, "", subject, history, text)
	if err != nil {
		return chatservice.Reply{}, err
	}
	return chatservice.Reply{Text: response.Content, Topic: string(advisor.Classify(text))}, nil
}

func (s *Service) buildChainInput(subject string, messages []chat.Message, userMessage string) map[string]any {
	if subject == "" {
		subject = DefaultSubject
	}
	return map[string]any{
		"subject": subject,
		"history": s.buildHistoryMessages(messages, userMessage),
		"query":   userMessage,
	}
}

// buildHistoryMessages keeps the most recent turns, leaving out the pending
// user message which the template appends itself.
func (s *Service) buildHistoryMessages(messages []chat.Message, userMessage string) []*schema.Message {
	if n := len(messages); n > 0 {
		last := messages[n-1]
		if last.Sender == chat.SenderUser && last.Text == userMessage {
			messages = messages[:n-1]
		}
	}
	if len(messages) == 0 {
		return nil
	}

	limit := s.cfg.HistoryLimit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}

	startIdx := 0
	if len(messages) > limit {
		startIdx = len(messages) - limit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Text))
		case chat.SenderAssistant:
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}
	return history
}
