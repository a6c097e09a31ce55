package memory

import (
	"context"
	"sync"

	"github.com/cinegate/cinegate/internal/domain"
)

// SettingsRepository holds settings for the lifetime of the process.
// Persisting them is deliberately out of scope: endpoint URLs and API
// keys are seeded from the environment on startup and runtime edits
// are as ephemeral as the rest of the client state.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings domain.Settings
}

func NewSettingsRepository(initial domain.Settings) *SettingsRepository {
	return &SettingsRepository{settings: clone(initial)}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.settings), nil
}

func (r *SettingsRepository) Put(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = clone(settings)
	return clone(r.settings), nil
}

func clone(s domain.Settings) domain.Settings {
	s.GigaChatSecrets = append([]string(nil), s.GigaChatSecrets...)
	return s
}
