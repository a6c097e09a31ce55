package app

import (
	"context"
	"errors"
	"testing"

	"github.com/cinegate/cinegate/internal/domain"
	"github.com/rs/zerolog"
)

type listStore struct {
	items []domain.Content
	err   error
	calls int
}

func (s *listStore) List(ctx context.Context) ([]domain.Content, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *listStore) Create(ctx context.Context, rec domain.NewContent) (domain.Content, error) {
	return domain.Content{}, errors.New("not implemented")
}

func TestCatalogService_RefreshReplacesList(t *testing.T) {
	store := &listStore{items: []domain.Content{
		{ID: 1, Title: "Матрица", Genre: "Фантастика", Kind: domain.KindMovie},
		{ID: 2, Title: "Новости 24", Genre: "Новости", Kind: domain.KindTV},
	}}
	svc := NewCatalogService(zerolog.Nop(), store, nil)

	svc.Refresh(context.Background())
	if got := len(svc.View().Items()); got != 2 {
		t.Fatalf("items: want 2, got %d", got)
	}
	if svc.View().Loading() {
		t.Fatalf("loading flag should be cleared")
	}

	// A second refresh replaces wholesale.
	store.items = store.items[:1]
	svc.Refresh(context.Background())
	if got := len(svc.View().Items()); got != 1 {
		t.Fatalf("items after second refresh: want 1, got %d", got)
	}
}

func TestCatalogService_RefreshFailureLeavesList(t *testing.T) {
	store := &listStore{items: []domain.Content{{ID: 1, Kind: domain.KindMovie}}}
	svc := NewCatalogService(zerolog.Nop(), store, nil)
	svc.Refresh(context.Background())

	store.err = errors.New("boom")
	svc.Refresh(context.Background())

	if got := len(svc.View().Items()); got != 1 {
		t.Fatalf("failed refresh must leave the list: got %d items", got)
	}
	if svc.View().Loading() {
		t.Fatalf("loading flag should be cleared after failure")
	}
}

func TestCatalogService_ToggleFavoriteUnknownID(t *testing.T) {
	svc := NewCatalogService(zerolog.Nop(), &listStore{}, nil)
	if _, err := svc.ToggleFavorite(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalogService_PlayerModes(t *testing.T) {
	store := &listStore{items: []domain.Content{
		{ID: 1, Kind: domain.KindMovie, VideoURL: "https://x/f.mp4"},
		{ID: 2, Kind: domain.KindTV, VideoURL: "https://x/live.m3u8"},
	}}
	svc := NewCatalogService(zerolog.Nop(), store, nil)
	svc.Refresh(context.Background())

	st, err := svc.OpenPlayer(2)
	if err != nil {
		t.Fatalf("OpenPlayer: %v", err)
	}
	if st.Mode != domain.PlaybackLive {
		t.Fatalf("tv mode: want live, got %s", st.Mode)
	}

	st, err = svc.OpenPlayer(1)
	if err != nil {
		t.Fatalf("OpenPlayer: %v", err)
	}
	if st.Mode != domain.PlaybackVideo {
		t.Fatalf("movie mode: want video, got %s", st.Mode)
	}

	svc.ClosePlayer()
	if svc.Player().Open {
		t.Fatalf("player should be closed")
	}
}
