package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinegate/cinegate/internal/domain"
)

func posterSettings() func(ctx context.Context) (domain.Settings, error) {
	return func(ctx context.Context) (domain.Settings, error) {
		s := domain.DefaultSettings()
		s.OpenAIAPIKey = "sk-test"
		return s, nil
	}
}

func TestPosterService_Generate(t *testing.T) {
	var got imageGenerationRequest
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/poster.png"}]}`))
	}))
	defer ts.Close()

	svc := NewPosterService(posterSettings()).WithEndpoint(ts.URL)
	res, err := svc.Generate(context.Background(), "Матрица", "хакер узнаёт правду", "Фантастика")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.ImageURL != "https://img.example/poster.png" {
		t.Fatalf("image url: got %q", res.ImageURL)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth: got %q", gotAuth)
	}
	if got.Model != "dall-e-3" || got.Size != "1024x1024" || got.N != 1 {
		t.Fatalf("unexpected request: %+v", got)
	}
	for _, part := range []string{"Professional movie poster for 'Матрица'", "хакер узнаёт правду", "Фантастика genre", "cinematic lighting"} {
		if !strings.Contains(got.Prompt, part) {
			t.Fatalf("prompt missing %q: %q", part, got.Prompt)
		}
	}
}

func TestPosterService_TitleRequired(t *testing.T) {
	svc := NewPosterService(posterSettings())
	_, err := svc.Generate(context.Background(), "  ", "", "")
	var coded *CodedError
	if !errors.As(err, &coded) || coded.Code != "invalid_params" {
		t.Fatalf("want invalid_params, got %v", err)
	}
}

func TestPosterService_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"billing hard limit reached"}}`))
	}))
	defer ts.Close()

	svc := NewPosterService(posterSettings()).WithEndpoint(ts.URL)
	_, err := svc.Generate(context.Background(), "Матрица", "", "")
	var coded *CodedError
	if !errors.As(err, &coded) {
		t.Fatalf("want CodedError, got %v", err)
	}
	if coded.Message != "billing hard limit reached" {
		t.Fatalf("message: got %q", coded.Message)
	}
}

func TestPosterPrompt_TitleOnly(t *testing.T) {
	p := PosterPrompt("Матрица", "", "")
	if strings.Contains(p, ", ,") || strings.Contains(p, " genre") {
		t.Fatalf("empty fields leaked into prompt: %q", p)
	}
}
