package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cinegate/cinegate/internal/app"
	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	svc *app.CatalogService
}

func NewCatalogHandler(svc *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.state)
		r.Post("/refresh", h.refresh)
		r.Put("/tab", h.setTab)
		r.Put("/search", h.setQuery)
		r.Get("/genres", h.genres)
		r.Get("/profile", h.profile)
		r.Get("/player", h.player)
		r.Delete("/player", h.closePlayer)
		r.Post("/{id}/favorite", h.toggleFavorite)
		r.Post("/{id}/play", h.openPlayer)
	})
}

// state renders the active view. Passing tab/query computes an
// alternative view without moving the active selection.
func (h *CatalogHandler) state(w http.ResponseWriter, r *http.Request) {
	view := h.svc.View()

	tabParam := r.URL.Query().Get("tab")
	queryParam := r.URL.Query().Get("query")
	if tabParam == "" && queryParam == "" {
		httpjson.Write(w, http.StatusOK, view.State())
		return
	}

	tab := view.Tab()
	if tabParam != "" {
		parsed, err := domain.ParseTab(tabParam)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		tab = parsed
	}
	query := queryParam
	if query == "" {
		query = view.Query()
	}

	st := view.State()
	st.Tab = tab
	st.Query = query
	st.Items = view.VisibleUnder(tab, query)
	httpjson.Write(w, http.StatusOK, st)
}

// refresh re-fetches the catalog. A failed fetch only shows up in the
// log; the response carries the unchanged state.
func (h *CatalogHandler) refresh(w http.ResponseWriter, r *http.Request) {
	h.svc.Refresh(r.Context())
	httpjson.Write(w, http.StatusOK, h.svc.View().State())
}

func (h *CatalogHandler) setTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	tab, err := domain.ParseTab(req.Tab)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, h.svc.SetTab(tab))
}

func (h *CatalogHandler) setQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	httpjson.Write(w, http.StatusOK, h.svc.SetQuery(req.Query))
}

func (h *CatalogHandler) genres(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]any{"genres": h.svc.View().Genres()})
}

func (h *CatalogHandler) profile(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.svc.View().Profile())
}

func (h *CatalogHandler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	it, err := h.svc.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, it)
}

func (h *CatalogHandler) openPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, err := h.svc.OpenPlayer(id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, st)
}

func (h *CatalogHandler) player(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.svc.Player())
}

func (h *CatalogHandler) closePlayer(w http.ResponseWriter, r *http.Request) {
	h.svc.ClosePlayer()
	httpjson.Write(w, http.StatusOK, h.svc.Player())
}
