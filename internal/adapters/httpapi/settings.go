package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cinegate/cinegate/internal/app"
	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	svc *app.SettingsService
}

func NewSettingsHandler(svc *app.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Routes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.put)
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Get(r.Context())
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, redact(settings))
}

func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	saved, err := h.svc.Put(r.Context(), settings)
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, redact(saved))
}

// redact masks every stored credential before it leaves the process.
func redact(s domain.Settings) domain.Settings {
	if s.GeminiAPIKey != "" {
		s.GeminiAPIKey = app.MaskSecret(s.GeminiAPIKey)
	}
	if s.OpenAIAPIKey != "" {
		s.OpenAIAPIKey = app.MaskSecret(s.OpenAIAPIKey)
	}
	masked := make([]string, len(s.GigaChatSecrets))
	for i, sec := range s.GigaChatSecrets {
		masked[i] = app.MaskSecret(sec)
	}
	s.GigaChatSecrets = masked
	return s
}
