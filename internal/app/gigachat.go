package app

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinegate/cinegate/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultGigaChatOAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	defaultGigaChatChatURL  = "https://gigachat.devices.sberbank.ru/api/v1/chat/completions"

	defaultProbeQuery = "Найди информацию о фильме 'Матрица'"
)

// Per-secret probe outcomes.
const (
	SecretStatusSuccess        = "SUCCESS"
	SecretStatusTokenOKAPIFail = "TOKEN_OK_API_FAIL"
	SecretStatusTokenFail      = "TOKEN_FAIL"
)

// CredentialService probes a list of GigaChat client secrets: for each
// one it runs the OAuth exchange and, if a token comes back, a real
// chat completion. The probe stops at the first working secret.
type CredentialService struct {
	settings func(ctx context.Context) (domain.Settings, error)
	oauthURL string
	chatURL  string
	client   *http.Client
}

func NewCredentialService(settingsGetter func(ctx context.Context) (domain.Settings, error)) *CredentialService {
	return &CredentialService{
		settings: settingsGetter,
		oauthURL: defaultGigaChatOAuthURL,
		chatURL:  defaultGigaChatChatURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				// The Sber endpoints present certificates from the
				// Russian trusted-root CA, absent from default bundles.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (s *CredentialService) WithEndpoints(oauthURL, chatURL string) *CredentialService {
	if strings.TrimSpace(oauthURL) != "" {
		s.oauthURL = strings.TrimSpace(oauthURL)
	}
	if strings.TrimSpace(chatURL) != "" {
		s.chatURL = strings.TrimSpace(chatURL)
	}
	return s
}

type SecretResult struct {
	MaskedSecret string `json:"masked_secret"`
	Status       string `json:"status"`
	TokenError   string `json:"token_error,omitempty"`
	APIError     string `json:"api_error,omitempty"`
	Answer       string `json:"answer,omitempty"`
	Model        string `json:"model,omitempty"`
}

type CredentialSummary struct {
	TotalTested int    `json:"total_tested"`
	Working     int    `json:"working"`
	Query       string `json:"query"`
}

type CredentialReport struct {
	Success             bool              `json:"success"`
	WorkingSecret       string            `json:"working_secret,omitempty"`
	WorkingSecretMasked string            `json:"working_secret_masked,omitempty"`
	Results             []SecretResult    `json:"results"`
	Summary             CredentialSummary `json:"summary"`
}

// Test probes the given secrets with the given chat query. Empty
// arguments fall back to the configured secrets and a canned query.
func (s *CredentialService) Test(ctx context.Context, secrets []string, query string) (CredentialReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultProbeQuery
	}
	if len(secrets) == 0 && s.settings != nil {
		st, err := s.settings(ctx)
		if err != nil {
			return CredentialReport{}, err
		}
		secrets = st.GigaChatSecrets
	}
	if len(secrets) == 0 {
		return CredentialReport{}, ErrNotConfigured
	}

	report := CredentialReport{Results: make([]SecretResult, 0, len(secrets))}
	for _, secret := range secrets {
		res := SecretResult{MaskedSecret: MaskSecret(secret)}

		token, err := s.fetchToken(ctx, secret)
		if err != nil {
			res.Status = SecretStatusTokenFail
			res.TokenError = err.Error()
			report.Results = append(report.Results, res)
			continue
		}

		answer, model, err := s.probeChat(ctx, token, query)
		if err != nil {
			res.Status = SecretStatusTokenOKAPIFail
			res.APIError = err.Error()
			report.Results = append(report.Results, res)
			continue
		}

		res.Status = SecretStatusSuccess
		res.Answer = answer
		res.Model = model
		report.Results = append(report.Results, res)

		report.Success = true
		report.WorkingSecret = secret
		report.WorkingSecretMasked = res.MaskedSecret
		break
	}

	report.Summary = CredentialSummary{TotalTested: len(report.Results), Query: query}
	if report.Success {
		report.Summary.Working = 1
	}
	return report, nil
}

type gigaChatTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (s *CredentialService) fetchToken(ctx context.Context, secret string) (string, error) {
	scope := "GIGACHAT_API_PERS"
	if s.settings != nil {
		if st, err := s.settings(ctx); err == nil && strings.TrimSpace(st.GigaChatScope) != "" {
			scope = st.GigaChatScope
		}
	}

	form := url.Values{"scope": {scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(secret)))
	// The OAuth endpoint requires a fresh request id per call.
	req.Header.Set("RqUID", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &CodedError{Code: "http_status", Message: "oauth failed: " + resp.Status}
	}

	var out gigaChatTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &CodedError{Code: "bad_response", Err: err}
	}
	if out.AccessToken == "" {
		return "", &CodedError{Code: "bad_response", Message: "empty access token"}
	}
	return out.AccessToken, nil
}

type gigaChatChatRequest struct {
	Model       string            `json:"model"`
	Messages    []gigaChatMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

type gigaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gigaChatChatResponse struct {
	Choices []struct {
		Message gigaChatMessage `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
}

func (s *CredentialService) probeChat(ctx context.Context, token, query string) (answer, model string, err error) {
	b, err := json.Marshal(gigaChatChatRequest{
		Model:       "GigaChat",
		Messages:    []gigaChatMessage{{Role: "user", Content: query}},
		Temperature: 0.7,
		MaxTokens:   512,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.chatURL, strings.NewReader(string(b)))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", &CodedError{Code: "http_status", Message: "chat probe failed: " + resp.Status}
	}

	var out gigaChatChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", &CodedError{Code: "bad_response", Err: err}
	}
	if len(out.Choices) == 0 {
		return "", "", &CodedError{Code: "bad_response", Message: "no choices in response"}
	}
	return out.Choices[0].Message.Content, out.Model, nil
}

// MaskSecret keeps enough of a secret to recognize it in a report
// without disclosing it.
func MaskSecret(s string) string {
	if len(s) <= 16 {
		return "********"
	}
	return s[:8] + "..." + s[len(s)-8:]
}
