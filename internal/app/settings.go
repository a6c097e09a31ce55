package app

import (
	"context"

	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/ports"
)

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsService) Put(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	// Backfill the model knobs; endpoint URLs and keys may stay empty,
	// the services report ErrNotConfigured when actually used.
	defaults := domain.DefaultSettings()
	if settings.GeminiModel == "" {
		settings.GeminiModel = defaults.GeminiModel
	}
	if settings.PosterModel == "" {
		settings.PosterModel = defaults.PosterModel
	}
	if settings.PosterSize == "" {
		settings.PosterSize = defaults.PosterSize
	}
	if settings.GigaChatScope == "" {
		settings.GigaChatScope = defaults.GigaChatScope
	}
	return s.repo.Put(ctx, settings)
}
