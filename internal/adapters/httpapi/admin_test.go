package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinegate/cinegate/internal/app"
	"github.com/cinegate/cinegate/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func adminRouter(store *app.ContentStoreService) (*app.AdminService, chi.Router) {
	svc := app.NewAdminService(zerolog.Nop(), store, nil, nil, nil, nil)
	r := chi.NewRouter()
	NewAdminHandler(svc).Routes(r)
	return svc, r
}

func putForm(t *testing.T, r chi.Router, draft domain.Draft) {
	t.Helper()
	body, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/admin/form", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("put form: want %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestAdminHandler_FormRoundTrip(t *testing.T) {
	_, r := adminRouter(nil)

	putForm(t, r, domain.Draft{Title: "Матрица", Genre: "Фантастика", Kind: "movie"})

	req := httptest.NewRequest(http.MethodGet, "/admin/form", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var draft domain.Draft
	if err := json.Unmarshal(rr.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.Title != "Матрица" || draft.Genre != "Фантастика" {
		t.Fatalf("form not kept: %+v", draft)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/form/reset", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if err := json.Unmarshal(rr.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.Title != "" || draft.Kind != "movie" {
		t.Fatalf("reset draft: want empty movie draft, got %+v", draft)
	}
}

func TestAdminHandler_SubmitCreated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"message":"created"}`))
	}))
	defer ts.Close()

	store := app.NewContentStoreService(nil).WithEndpoints(ts.URL, ts.URL)
	svc, r := adminRouter(store)

	putForm(t, r, domain.Draft{Title: "Матрица", Genre: "Фантастика", Rating: "8.7", Year: "1999", Kind: "movie"})

	req := httptest.NewRequest(http.MethodPost, "/admin/content", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: want %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	var resp struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 7 {
		t.Fatalf("id: want 7, got %d", resp.ID)
	}
	if got := svc.Form().Title; got != "" {
		t.Fatalf("form should reset after success, title is %q", got)
	}
}

func TestAdminHandler_SubmitValidationError(t *testing.T) {
	_, r := adminRouter(app.NewContentStoreService(nil))

	putForm(t, r, domain.Draft{Genre: "Фантастика", Kind: "movie"})

	req := httptest.NewRequest(http.MethodPost, "/admin/content", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: want %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestAdminHandler_SubmitUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Контент с таким названием уже существует"}`))
	}))
	defer ts.Close()

	store := app.NewContentStoreService(nil).WithEndpoints(ts.URL, ts.URL)
	svc, r := adminRouter(store)

	putForm(t, r, domain.Draft{Title: "Матрица", Genre: "Фантастика", Kind: "movie"})

	req := httptest.NewRequest(http.MethodPost, "/admin/content", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: want %d, got %d", http.StatusBadGateway, rr.Code)
	}
	if got := svc.Form().Title; got != "Матрица" {
		t.Fatalf("form must survive a failed submit, title is %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/notices", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var body struct {
		Notices []app.Notice `json:"notices"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Notices) != 1 || !body.Notices[0].Error {
		t.Fatalf("want one error notice, got %+v", body.Notices)
	}
}

func TestAdminHandler_AISearchNotConfigured(t *testing.T) {
	svc := app.NewAdminService(zerolog.Nop(), nil, app.NewAISearchService(nil), nil, nil, nil)
	r := chi.NewRouter()
	NewAdminHandler(svc).Routes(r)

	req := httptest.NewRequest(http.MethodPost, "/admin/ai-search", bytes.NewReader([]byte(`{"query":"Матрица"}`)))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: want %d, got %d: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestAdminHandler_CredentialReportBeforeRun(t *testing.T) {
	_, r := adminRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/credentials/report", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: want %d, got %d", http.StatusNotFound, rr.Code)
	}
}
