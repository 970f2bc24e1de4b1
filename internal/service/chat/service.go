package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/model/chat"
)

var (
	ErrPlantRequired   = errors.New("plant name is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrInvalidSender   = errors.New("invalid sender")
	ErrMessageNotFound = errors.New("message not found")
)

// DefaultReplyDelay mimics the assistant "thinking" before it answers.
const DefaultReplyDelay = 1500 * time.Millisecond

// PhotoUploadText is recorded when the user attaches a photo.
const PhotoUploadText = "I've uploaded another photo of my plant."

// Reply is the assistant's answer to one user utterance.
type Reply struct {
	Text  string
	Topic string
}

// Replier produces the assistant turn for a user utterance about subject.
type Replier interface {
	Reply(ctx context.Context, subject string, history []chat.Message, text string) (Reply, error)
}

// Exchange pairs a user message with the assistant reply it produced.
type Exchange struct {
	Message chat.Message `json:"message"`
	Reply   chat.Message `json:"reply"`
}

// Option customizes a Service.
type Option func(*Service)

// WithReplyDelay overrides the artificial delay before each reply.
func WithReplyDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithGreeting overrides the opening assistant message. An empty greeting
// starts sessions with an empty transcript.
func WithGreeting(greeting string) Option {
	return func(s *Service) {
		s.greeting = greeting
	}
}

// Service encapsulates conversation state management.
type Service struct {
	replier  Replier
	delay    time.Duration
	greeting string

	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory chat service.
func NewService(replier Replier, opts ...Option) *Service {
	s := &Service{
		replier:  replier,
		delay:    DefaultReplyDelay,
		greeting: advisor.Greeting,
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession provisions an anonymous session about a plant.
func (s *Service) CreateSession(_ context.Context, plantID, plantName string) (chat.Session, error) {
	plantName = strings.TrimSpace(plantName)
	if plantName == "" {
		return chat.Session{}, ErrPlantRequired
	}

	session := chat.Session{
		ID:        uuid.NewString(),
		PlantID:   plantID,
		PlantName: plantName,
		CreatedAt: time.Now().UTC(),
	}

	transcript := make([]chat.Message, 0, 16)
	if s.greeting != "" {
		transcript = append(transcript, chat.Message{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Sender:    chat.SenderAssistant,
			Text:      s.greeting,
			CreatedAt: session.CreatedAt,
		})
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = transcript
	s.mu.Unlock()

	zap.L().Debug("chat session created", zap.String("session", session.ID), zap.String("plant", plantName))
	return session, nil
}

// SaveMessage appends a message to the session history and returns it with
// its assigned identifier.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}
	if !message.Sender.Valid() {
		return chat.Message{}, fmt.Errorf("%w: %q", ErrInvalidSender, message.Sender)
	}
	if strings.TrimSpace(message.Text) == "" && message.ImageURL == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return message, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session in the
// order they were recorded.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// FindMessage returns the recorded message with the given identifier.
func (s *Service) FindMessage(_ context.Context, sessionID, messageID string) (chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}
	for _, msg := range messages {
		if msg.ID == messageID {
			return msg, nil
		}
	}
	return chat.Message{}, ErrMessageNotFound
}

// Send records the user's text, waits the reply delay and records the
// assistant's answer. When ctx ends during the delay the pending reply is
// discarded and ctx.Err() is returned; the user message stays recorded.
func (s *Service) Send(ctx context.Context, sessionID, text string) (Exchange, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return Exchange{}, err
	}

	userMsg, err := s.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Text:      text,
	})
	if err != nil {
		return Exchange{}, err
	}

	if err := s.Think(ctx); err != nil {
		zap.L().Debug("pending reply discarded", zap.String("session", sessionID), zap.Error(err))
		return Exchange{}, err
	}

	history, err := s.LoadTranscript(ctx, sessionID)
	if err != nil {
		return Exchange{}, err
	}

	reply, err := s.replier.Reply(ctx, session.PlantName, history, text)
	if err != nil {
		return Exchange{}, fmt.Errorf("generate reply: %w", err)
	}

	assistantMsg, err := s.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderAssistant,
		Text:      reply.Text,
		Topic:     reply.Topic,
	})
	if err != nil {
		return Exchange{}, err
	}

	zap.L().Info("chat reply",
		zap.String("session", sessionID),
		zap.String("plant", session.PlantName),
		zap.String("topic", reply.Topic),
	)
	return Exchange{Message: userMsg, Reply: assistantMsg}, nil
}

// SendQuickReply asks the canned question behind buttonID as if the user
// typed it.
func (s *Service) SendQuickReply(ctx context.Context, sessionID, buttonID string) (Exchange, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return Exchange{}, err
	}
	if !advisor.IsQuickReply(buttonID) {
		zap.L().Debug("unknown quick reply, asking the generic question",
			zap.String("session", sessionID),
			zap.String("button", buttonID),
		)
	}
	return s.Send(ctx, sessionID, advisor.QuickReplyQuestion(buttonID, session.PlantName))
}

// UploadPhoto records a user message carrying an image. The assistant does
// not answer photo uploads.
func (s *Service) UploadPhoto(ctx context.Context, sessionID, imageURL string) (chat.Message, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return chat.Message{}, ErrEmptyMessage
	}
	return s.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Text:      PhotoUploadText,
		ImageURL:  imageURL,
	})
}

// Think waits the configured reply delay. It returns ctx.Err() if ctx ends
// first.
func (s *Service) Think(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
