package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	model "github.com/farmai/farmai/backend/internal/model/settings"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Service keeps the user's preferences for the lifetime of the process.
type Service struct {
	mu      sync.RWMutex
	current model.Settings
	cleared time.Time
}

// NewService starts from the default settings.
func NewService() *Service {
	return &Service{current: model.Defaults()}
}

// Get returns the current settings.
func (s *Service) Get(_ context.Context) model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies patch atomically. An invalid patch changes nothing.
func (s *Service) Update(_ context.Context, patch model.Patch) (model.Settings, error) {
	var language string
	if patch.Language != nil {
		idx := slices.IndexFunc(model.Languages, func(l string) bool {
			return strings.EqualFold(l, strings.TrimSpace(*patch.Language))
		})
		if idx < 0 {
			return model.Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, *patch.Language)
		}
		language = model.Languages[idx]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.DarkMode != nil {
		s.current.DarkMode = *patch.DarkMode
	}
	if patch.Notifications != nil {
		s.current.Notifications = *patch.Notifications
	}
	if language != "" {
		s.current.Language = language
	}
	if patch.OfflineEnabled != nil {
		s.current.OfflineEnabled = *patch.OfflineEnabled
	}
	return s.current, nil
}

// ClearCache drops cached plant data. Nothing is cached on the server side,
// so this only records when the client asked for it.
func (s *Service) ClearCache(_ context.Context) time.Time {
	s.mu.Lock()
	s.cleared = time.Now().UTC()
	clearedAt := s.cleared
	s.mu.Unlock()

	zap.L().Info("plant data cache cleared", zap.Time("at", clearedAt))
	return clearedAt
}
