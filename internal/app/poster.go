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

// PosterService generates a poster image through the OpenAI images
// API and hands the hosted URL back; nothing is downloaded or stored.
type PosterService struct {
	settings func(ctx context.Context) (domain.Settings, error)
	endpoint string
	client   *http.Client
}

func NewPosterService(settingsGetter func(ctx context.Context) (domain.Settings, error)) *PosterService {
	return &PosterService{
		settings: settingsGetter,
		endpoint: "https://api.openai.com/v1",
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *PosterService) WithEndpoint(endpoint string) *PosterService {
	if strings.TrimSpace(endpoint) != "" {
		s.endpoint = strings.TrimSpace(endpoint)
	}
	return s
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type PosterResult struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title"`
	Prompt   string `json:"prompt"`
}

// PosterPrompt composes the generation prompt from whatever fields
// are filled in; only the title is mandatory.
func PosterPrompt(title, description, genre string) string {
	var b strings.Builder
	b.WriteString("Professional movie poster for '" + title + "'")
	if description != "" {
		b.WriteString(", " + description)
	}
	if genre != "" {
		b.WriteString(", " + genre + " genre")
	}
	b.WriteString(", cinematic lighting, dramatic composition, high quality, detailed, professional film poster style")
	return b.String()
}

func (s *PosterService) Generate(ctx context.Context, title, description, genre string) (PosterResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return PosterResult{}, &CodedError{Code: "invalid_params", Message: "title is required"}
	}
	if s.settings == nil {
		return PosterResult{}, ErrNotConfigured
	}
	st, err := s.settings(ctx)
	if err != nil {
		return PosterResult{}, err
	}
	if strings.TrimSpace(st.OpenAIAPIKey) == "" {
		return PosterResult{}, ErrNotConfigured
	}

	defaults := domain.DefaultSettings()
	model := st.PosterModel
	if model == "" {
		model = defaults.PosterModel
	}
	size := st.PosterSize
	if size == "" {
		size = defaults.PosterSize
	}

	prompt := PosterPrompt(title, strings.TrimSpace(description), strings.TrimSpace(genre))
	b, err := json.Marshal(imageGenerationRequest{
		Model:   model,
		Prompt:  prompt,
		Size:    size,
		Quality: "standard",
		N:       1,
	})
	if err != nil {
		return PosterResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/images/generations", bytes.NewReader(b))
	if err != nil {
		return PosterResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(st.OpenAIAPIKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return PosterResult{}, &CodedError{Code: "network_error", Err: err}
	}
	defer resp.Body.Close()

	var out imageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PosterResult{}, &CodedError{Code: "bad_response", Err: err}
	}
	if out.Error != nil {
		return PosterResult{}, &CodedError{Code: "http_status", Message: out.Error.Message}
	}
	if resp.StatusCode >= 400 {
		return PosterResult{}, &CodedError{Code: "http_status", Message: "poster generation failed: " + resp.Status}
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return PosterResult{}, &CodedError{Code: "bad_response", Message: "no image in response"}
	}

	return PosterResult{ImageURL: out.Data[0].URL, Title: title, Prompt: prompt}, nil
}
