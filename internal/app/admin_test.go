package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinegate/cinegate/internal/domain"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	created []domain.NewContent
	err     error
	block   chan struct{}
}

func (f *fakeStore) List(ctx context.Context) ([]domain.Content, error) {
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, rec domain.NewContent) (domain.Content, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return domain.Content{}, f.err
	}
	f.created = append(f.created, rec)
	return domain.Content{
		ID:    len(f.created),
		Title: rec.Title,
		Genre: rec.Genre,
		Kind:  rec.Kind,
		Year:  rec.Year,
	}, nil
}

func newAdmin(store *fakeStore) *AdminService {
	return NewAdminService(zerolog.Nop(), store, nil, nil, nil, nil)
}

func TestAdminService_SubmitCoercesNumericFields(t *testing.T) {
	store := &fakeStore{}
	svc := newAdmin(store)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	svc.SetForm(domain.Draft{
		Title:  "Матрица",
		Genre:  "Фантастика",
		Rating: "abc",
		Year:   "",
		Kind:   "movie",
	})

	if _, err := svc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("created: want 1, got %d", len(store.created))
	}
	rec := store.created[0]
	if rec.Rating != 0 {
		t.Fatalf("rating: want 0, got %v", rec.Rating)
	}
	if rec.Year != 2026 {
		t.Fatalf("year: want current year 2026, got %d", rec.Year)
	}
}

func TestAdminService_SubmitSuccessResetsForm(t *testing.T) {
	store := &fakeStore{}
	svc := newAdmin(store)

	svc.SetForm(domain.Draft{Title: "Матрица", Genre: "Фантастика", Year: "1999", Kind: "movie", ImageURL: "https://x/p.png"})
	if _, err := svc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got, want := svc.Form(), domain.EmptyDraft(); got != want {
		t.Fatalf("form after success: want %+v, got %+v", want, got)
	}
	notices := svc.Notices()
	if len(notices) != 1 || notices[0].Error {
		t.Fatalf("want one success notice, got %+v", notices)
	}
}

func TestAdminService_SubmitFailureKeepsFields(t *testing.T) {
	store := &fakeStore{err: &CodedError{Code: "http_status", Message: "duplicate title"}}
	svc := newAdmin(store)

	draft := domain.Draft{Title: "Матрица", Genre: "Фантастика", Year: "1999", Kind: "movie"}
	svc.SetForm(draft)

	if _, err := svc.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if got := svc.Form(); got != draft {
		t.Fatalf("form must be kept on failure: %+v", got)
	}

	notices := svc.Notices()
	if len(notices) != 1 || !notices[0].Error {
		t.Fatalf("want one error notice, got %+v", notices)
	}
	if notices[0].Detail != "duplicate title" {
		t.Fatalf("notice detail: want server message, got %q", notices[0].Detail)
	}
}

func TestAdminService_SubmitValidationFailure(t *testing.T) {
	store := &fakeStore{}
	svc := newAdmin(store)
	svc.SetForm(domain.Draft{Title: "Матрица", Genre: "", Year: "1999", Kind: "movie"})

	_, err := svc.Submit(context.Background())
	if !errors.Is(err, domain.ErrInvalidContent) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("invalid record must not reach the store")
	}
	if svc.Busy(ActionSubmit) {
		t.Fatalf("busy flag must be cleared after validation failure")
	}
}

func TestAdminService_BusyFlagBlocksReentry(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	svc := newAdmin(store)
	svc.SetForm(domain.Draft{Title: "Матрица", Genre: "Фантастика", Year: "1999", Kind: "movie"})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background())
		done <- err
	}()

	// Wait until the first submit has claimed the flag.
	for !svc.Busy(ActionSubmit) {
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("want ErrBusy, got %v", err)
	}

	close(store.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if svc.Busy(ActionSubmit) {
		t.Fatalf("busy flag must clear after completion")
	}
}

func TestAdminService_AISearchMergesPresentFieldsOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiAnswer(`{"title":"Матрица","year":1999,"type":"movie"}`)))
	}))
	defer ts.Close()

	search := NewAISearchService(geminiSettings()).WithEndpoint(ts.URL)
	svc := NewAdminService(zerolog.Nop(), &fakeStore{}, search, nil, nil, nil)

	svc.SetForm(domain.Draft{Description: "моё описание", Genre: "мой жанр", Kind: "series"})

	merged, err := svc.AISearch(context.Background(), "Матрица")
	if err != nil {
		t.Fatalf("AISearch: %v", err)
	}
	if merged.Title != "Матрица" || merged.Year != "1999" || merged.Kind != "movie" {
		t.Fatalf("merged fields wrong: %+v", merged)
	}
	// Absent fields keep the operator's text.
	if merged.Description != "моё описание" || merged.Genre != "мой жанр" {
		t.Fatalf("absent fields overwritten: %+v", merged)
	}
}

func TestAdminService_GeneratePosterFillsImageURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/poster.png"}]}`))
	}))
	defer ts.Close()

	poster := NewPosterService(posterSettings()).WithEndpoint(ts.URL)
	svc := NewAdminService(zerolog.Nop(), &fakeStore{}, nil, poster, nil, nil)
	svc.SetForm(domain.Draft{Title: "Матрица", Kind: "movie"})

	res, err := svc.GeneratePoster(context.Background())
	if err != nil {
		t.Fatalf("GeneratePoster: %v", err)
	}
	if res.ImageURL != "https://img.example/poster.png" {
		t.Fatalf("result url: %q", res.ImageURL)
	}
	if svc.Form().ImageURL != res.ImageURL {
		t.Fatalf("form image url not filled: %+v", svc.Form())
	}
}

func TestAdminService_TestCredentialsKeepsReport(t *testing.T) {
	oauth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_at":1}`))
	}))
	defer oauth.Close()
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}],"model":"GigaChat"}`))
	}))
	defer chat.Close()

	creds := NewCredentialService(nil).WithEndpoints(oauth.URL, chat.URL)
	svc := NewAdminService(zerolog.Nop(), &fakeStore{}, nil, nil, creds, nil)

	report, err := svc.TestCredentials(context.Background(), []string{"secret-000000000000000000"}, "ping")
	if err != nil {
		t.Fatalf("TestCredentials: %v", err)
	}
	if !report.Success {
		t.Fatalf("expected success: %+v", report)
	}
	kept := svc.CredentialReport()
	if kept == nil || !kept.Success {
		t.Fatalf("report not kept: %+v", kept)
	}
}
