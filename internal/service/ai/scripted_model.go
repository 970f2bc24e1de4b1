package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
)

// DefaultSubject is used when the conversation carries no system message.
const DefaultSubject = "your plant"

var ErrToolsUnsupported = errors.New("scripted model does not call tools")

// ScriptedModel answers with the advisor's canned responses. The first
// system message names the subject; the last user message is the question.
type ScriptedModel struct{}

var _ model.ChatModel = (*ScriptedModel)(nil)

// NewScriptedModel returns a chat model backed by the keyword advisor.
func NewScriptedModel() *ScriptedModel {
	return &ScriptedModel{}
}

// Generate returns the full advisory as a single assistant message.
func (m *ScriptedModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	subject, question := conversationParts(input)
	return schema.AssistantMessage(advisor.Respond(question, subject), nil), nil
}

// Stream emits the advisory word by word. Concatenating the chunks yields
// exactly what Generate returns.
func (m *ScriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	full, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	words := strings.SplitAfter(full.Content, " ")
	chunks := make([]*schema.Message, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		chunks = append(chunks, schema.AssistantMessage(word, nil))
	}
	return schema.StreamReaderFromArray(chunks), nil
}

// BindTools rejects tool binding.
func (m *ScriptedModel) BindTools(tools []*schema.ToolInfo) error {
	if len(tools) == 0 {
		return nil
	}
	return ErrToolsUnsupported
}

// GetType names the component in eino callbacks.
func (m *ScriptedModel) GetType() string {
	return "ScriptedAdvisor"
}

func conversationParts(input []*schema.Message) (subject, question string) {
	subject = DefaultSubject
	for _, msg := range input {
		if msg != nil && msg.Role == schema.System {
			if name := strings.TrimSpace(msg.Content); name != "" {
				subject = name
			}
			break
		}
	}

	for i := len(input) - 1; i >= 0; i-- {
		if input[i] != nil && input[i].Role == schema.User {
			question = input[i].Content
			break
		}
	}
	return subject, question
}
