package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinegate/cinegate/internal/app"
	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	svc *app.AdminService
}

func NewAdminHandler(svc *app.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Routes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/form", h.form)
		r.Put("/form", h.setForm)
		r.Post("/form/reset", h.reset)
		r.Post("/content", h.submit)
		r.Post("/ai-search", h.aiSearch)
		r.Post("/poster", h.poster)
		r.Post("/credentials/test", h.testCredentials)
		r.Get("/credentials/report", h.credentialReport)
		r.Get("/notices", h.notices)
	})
}

func (h *AdminHandler) form(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.svc.Form())
}

func (h *AdminHandler) setForm(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	httpjson.Write(w, http.StatusOK, h.svc.SetForm(draft))
}

func (h *AdminHandler) reset(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.svc.Reset())
}

func (h *AdminHandler) submit(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.Submit(r.Context())
	if err != nil {
		writeActionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "Контент успешно добавлен",
		"content": created,
	})
}

func (h *AdminHandler) aiSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	form, err := h.svc.AISearch(r.Context(), req.Query)
	if err != nil {
		writeActionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, form)
}

func (h *AdminHandler) poster(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GeneratePoster(r.Context())
	if err != nil {
		writeActionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}

func (h *AdminHandler) testCredentials(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Secrets []string `json:"secrets"`
		Query   string   `json:"query"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	report, err := h.svc.TestCredentials(r.Context(), req.Secrets, req.Query)
	if err != nil {
		writeActionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, report)
}

func (h *AdminHandler) credentialReport(w http.ResponseWriter, r *http.Request) {
	report := h.svc.CredentialReport()
	if report == nil {
		httpjson.WriteError(w, http.StatusNotFound, "no diagnostic has been run")
		return
	}
	httpjson.Write(w, http.StatusOK, report)
}

func (h *AdminHandler) notices(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]any{"notices": h.svc.Notices()})
}

// writeActionError maps admin action failures onto HTTP statuses:
// re-entrant calls conflict, bad drafts and missing configuration are
// the caller's problem, everything upstream is a bad gateway.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrBusy):
		httpjson.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidContent):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotConfigured):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, err.Error())
	default:
		var coded *app.CodedError
		if errors.As(err, &coded) {
			if coded.Code == "invalid_params" {
				httpjson.WriteError(w, http.StatusBadRequest, coded.Error())
				return
			}
			httpjson.WriteError(w, http.StatusBadGateway, coded.Error())
			return
		}
		httpjson.WriteError(w, http.StatusBadGateway, err.Error())
	}
}
