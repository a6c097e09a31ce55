package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cinegate/cinegate/internal/domain"
)

// Suggestion is what the model found for a query. Every field is
// optional: the model may know the title but not the year, and a
// field that is absent must not overwrite what the operator typed.
type Suggestion struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Genre       *string  `json:"genre"`
	Rating      *float64 `json:"rating"`
	Year        *int     `json:"year"`
	Kind        *string  `json:"type"`
	ImageHint   *string  `json:"image_suggestion"`
}

// AISearchService looks up movie/series/TV facts through the Gemini
// generateContent API and parses the model's JSON answer.
type AISearchService struct {
	settings func(ctx context.Context) (domain.Settings, error)
	endpoint string
	client   *http.Client
}

func NewAISearchService(settingsGetter func(ctx context.Context) (domain.Settings, error)) *AISearchService {
	return &AISearchService{
		settings: settingsGetter,
		endpoint: "https://generativelanguage.googleapis.com/v1beta",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *AISearchService) WithEndpoint(endpoint string) *AISearchService {
	if strings.TrimSpace(endpoint) != "" {
		s.endpoint = strings.TrimSpace(endpoint)
	}
	return s
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// The prompt is in Russian on purpose: the catalog stores Russian
// titles and genres.
const searchPromptFormat = `Найди информацию о фильме, сериале или ТВ-программе: %q

Верни JSON со следующими полями:
- title: название на русском
- description: краткое описание (2-3 предложения)
- genre: жанр на русском (один, основной)
- rating: рейтинг от 0 до 10 (число)
- year: год выхода (число)
- type: тип контента - "movie" для фильмов, "series" для сериалов, "tv" для ТВ-каналов
- image_suggestion: описание постера для генерации (на английском, детальное)

Если не можешь найти информацию, верни пустой объект {}.
Отвечай ТОЛЬКО валидным JSON, без дополнительного текста.`

// Search asks the model about query. A missing title in the answer
// counts as not found.
func (s *AISearchService) Search(ctx context.Context, query string) (Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Suggestion{}, &CodedError{Code: "invalid_params", Message: "query is required"}
	}
	if s.settings == nil {
		return Suggestion{}, ErrNotConfigured
	}
	st, err := s.settings(ctx)
	if err != nil {
		return Suggestion{}, err
	}
	if strings.TrimSpace(st.GeminiAPIKey) == "" {
		return Suggestion{}, ErrNotConfigured
	}
	model := st.GeminiModel
	if model == "" {
		model = domain.DefaultSettings().GeminiModel
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: fmt.Sprintf(searchPromptFormat, query)}}}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return Suggestion{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.endpoint, model, st.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return Suggestion{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Suggestion{}, &CodedError{Code: "network_error", Err: err}
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Suggestion{}, &CodedError{Code: "bad_response", Err: err}
	}
	if out.Error != nil {
		return Suggestion{}, &CodedError{Code: "http_status", Message: out.Error.Message}
	}
	if resp.StatusCode >= 400 {
		return Suggestion{}, &CodedError{Code: "http_status", Message: "ai search failed: " + resp.Status}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return Suggestion{}, &CodedError{Code: "bad_response", Message: "empty model answer"}
	}

	var sugg Suggestion
	if err := json.Unmarshal([]byte(stripFences(out.Candidates[0].Content.Parts[0].Text)), &sugg); err != nil {
		return Suggestion{}, &CodedError{Code: "bad_response", Err: err}
	}
	if sugg.Title == nil || strings.TrimSpace(*sugg.Title) == "" {
		return Suggestion{}, ErrNotFound
	}
	return sugg, nil
}

// stripFences drops the ```json fences models like to wrap answers in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
