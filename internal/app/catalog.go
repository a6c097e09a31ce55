package app

import (
	"context"
	"encoding/json"

	"github.com/cinegate/cinegate/internal/catalog"
	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/ports"
	"github.com/rs/zerolog"
)

// CatalogService owns the catalog view and its single data path: one
// full-list fetch from the remote store. Favorite toggles and tab
// switches stay local and never hit the network.
type CatalogService struct {
	logger zerolog.Logger
	view   *catalog.View
	store  ports.ContentStore
	bus    ports.EventBus
}

func NewCatalogService(logger zerolog.Logger, store ports.ContentStore, bus ports.EventBus) *CatalogService {
	return &CatalogService{
		logger: logger,
		view:   catalog.NewView(),
		store:  store,
		bus:    bus,
	}
}

func (s *CatalogService) View() *catalog.View { return s.view }

// Refresh replaces the whole in-memory list with whatever the store
// returns. On failure the list is left as it was and the error only
// reaches the log: the catalog path has no user-facing error state.
// Responses to a fetch that has since been superseded are discarded.
func (s *CatalogService) Refresh(ctx context.Context) {
	token := s.view.BeginFetch()
	items, err := s.store.List(ctx)
	if err != nil {
		s.view.FailFetch(token)
		s.logger.Error().Err(err).Msg("failed to fetch content")
		return
	}
	if !s.view.CompleteFetch(token, items) {
		s.logger.Debug().Uint64("token", token).Msg("discarding stale catalog fetch")
		return
	}
	s.logger.Info().Int("items", len(items)).Msg("catalog loaded")
	s.publish("catalog.loaded", map[string]int{"items": len(items)})
}

func (s *CatalogService) SetTab(tab domain.Tab) catalog.State {
	s.view.SetTab(tab)
	s.publish("catalog.tab", map[string]string{"tab": string(tab)})
	return s.view.State()
}

func (s *CatalogService) SetQuery(query string) catalog.State {
	s.view.SetQuery(query)
	return s.view.State()
}

func (s *CatalogService) ToggleFavorite(id int) (domain.Content, error) {
	it, ok := s.view.ToggleFavorite(id)
	if !ok {
		return domain.Content{}, ErrNotFound
	}
	s.publish("catalog.favorite", map[string]any{"id": it.ID, "isFavorite": it.Favorite})
	return it, nil
}

// PlayerState pairs the selected item with the playback mode the
// player should use for it.
type PlayerState struct {
	Open    bool                `json:"open"`
	Mode    domain.PlaybackMode `json:"mode,omitempty"`
	Content *domain.Content     `json:"content,omitempty"`
}

func (s *CatalogService) OpenPlayer(id int) (PlayerState, error) {
	it, ok := s.view.OpenPlayer(id)
	if !ok {
		return PlayerState{}, ErrNotFound
	}
	s.publish("catalog.play", map[string]any{"id": it.ID, "mode": it.Kind.Playback()})
	return PlayerState{Open: true, Mode: it.Kind.Playback(), Content: &it}, nil
}

func (s *CatalogService) ClosePlayer() {
	s.view.ClosePlayer()
}

func (s *CatalogService) Player() PlayerState {
	it, open := s.view.Player()
	if !open {
		return PlayerState{}
	}
	return PlayerState{Open: true, Mode: it.Kind.Playback(), Content: &it}
}

func (s *CatalogService) publish(topic string, payload any) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.bus.Publish(topic, b)
}
