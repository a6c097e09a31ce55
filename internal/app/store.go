package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cinegate/cinegate/internal/domain"
)

// ContentStoreService talks to the two deployed content functions:
// one serving the full list, one accepting new records. Their internals
// (database, validation) are opaque to the gateway.
type ContentStoreService struct {
	settings  func(ctx context.Context) (domain.Settings, error)
	listURL   string
	createURL string
	client    *http.Client
}

func NewContentStoreService(settingsGetter func(ctx context.Context) (domain.Settings, error)) *ContentStoreService {
	return &ContentStoreService{
		settings: settingsGetter,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithEndpoints overrides the configured function URLs (tests).
func (s *ContentStoreService) WithEndpoints(listURL, createURL string) *ContentStoreService {
	if strings.TrimSpace(listURL) != "" {
		s.listURL = strings.TrimSpace(listURL)
	}
	if strings.TrimSpace(createURL) != "" {
		s.createURL = strings.TrimSpace(createURL)
	}
	return s
}

type contentListResponse struct {
	Content []domain.Content `json:"content"`
}

// List performs the single full-catalog read. A payload without a
// content array yields an empty list, not an error.
func (s *ContentStoreService) List(ctx context.Context) ([]domain.Content, error) {
	url, err := s.endpoint(ctx, s.listURL, func(st domain.Settings) string { return st.ContentListURL })
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &CodedError{Code: "network_error", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, remoteError(resp, "content list request failed")
	}

	var out contentListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &CodedError{Code: "bad_response", Err: err}
	}
	if out.Content == nil {
		return []domain.Content{}, nil
	}
	return out.Content, nil
}

type contentCreateResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Create submits the flat record and returns it as the store created
// it. Non-2xx responses surface the store's own error message.
func (s *ContentStoreService) Create(ctx context.Context, rec domain.NewContent) (domain.Content, error) {
	url, err := s.endpoint(ctx, s.createURL, func(st domain.Settings) string { return st.ContentCreateURL })
	if err != nil {
		return domain.Content{}, err
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return domain.Content{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return domain.Content{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Content{}, &CodedError{Code: "network_error", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.Content{}, remoteError(resp, "content create request failed")
	}

	var out contentCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Content{}, &CodedError{Code: "bad_response", Err: err}
	}

	return domain.Content{
		ID:          out.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Genre:       rec.Genre,
		Rating:      rec.Rating,
		Year:        rec.Year,
		Kind:        rec.Kind,
		ImageURL:    rec.ImageURL,
		VideoURL:    rec.VideoURL,
	}, nil
}

func (s *ContentStoreService) endpoint(ctx context.Context, override string, pick func(domain.Settings) string) (string, error) {
	if override != "" {
		return override, nil
	}
	if s.settings == nil {
		return "", ErrNotConfigured
	}
	st, err := s.settings(ctx)
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(pick(st))
	if url == "" {
		return "", ErrNotConfigured
	}
	return url, nil
}

// remoteError digs the {"error": ...} body out of a failed response.
func remoteError(resp *http.Response, fallback string) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := fallback
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && strings.TrimSpace(body.Error) != "" {
		msg = body.Error
	}
	return &CodedError{Code: "http_status", Message: msg}
}
