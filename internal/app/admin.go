package app

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cinegate/cinegate/internal/domain"
	"github.com/cinegate/cinegate/internal/ports"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Action names the independent one-shot admin operations. Each is
// gated by its own busy flag; none waits for another.
type Action string

const (
	ActionSubmit      Action = "submit"
	ActionSearch      Action = "ai-search"
	ActionPoster      Action = "poster"
	ActionCredentials Action = "credentials"
)

// Notice is a transient operator-visible message, the server-side
// equivalent of a toast.
type Notice struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Title  string    `json:"title"`
	Detail string    `json:"detail,omitempty"`
	Error  bool      `json:"error,omitempty"`
}

const maxNotices = 20

// AdminService owns the submission form and the auxiliary actions
// around it. All state is process-local; the only durable effect is
// the create call to the remote store.
type AdminService struct {
	logger zerolog.Logger
	store  ports.ContentStore
	search *AISearchService
	poster *PosterService
	creds  *CredentialService
	bus    ports.EventBus

	// now is injectable so the year coercion default is testable.
	now func() time.Time

	mu         sync.Mutex
	form       domain.Draft
	busy       map[Action]bool
	seq        map[Action]uint64
	notices    []Notice
	credReport *CredentialReport
}

func NewAdminService(logger zerolog.Logger, store ports.ContentStore, search *AISearchService, poster *PosterService, creds *CredentialService, bus ports.EventBus) *AdminService {
	return &AdminService{
		logger: logger,
		store:  store,
		search: search,
		poster: poster,
		creds:  creds,
		bus:    bus,
		now:    time.Now,
		form:   domain.EmptyDraft(),
		busy:   make(map[Action]bool),
		seq:    make(map[Action]uint64),
	}
}

func (s *AdminService) Form() domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the whole draft, as the form binds field-by-field.
func (s *AdminService) SetForm(d domain.Draft) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = d
	return s.form
}

// Reset clears every field back to its initial default.
func (s *AdminService) Reset() domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = domain.EmptyDraft()
	return s.form
}

func (s *AdminService) Busy(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[action]
}

func (s *AdminService) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notice(nil), s.notices...)
}

func (s *AdminService) CredentialReport() *CredentialReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credReport == nil {
		return nil
	}
	cp := *s.credReport
	return &cp
}

// Submit coerces and validates the current draft and sends it to the
// store. Success resets the form; any failure keeps the fields so the
// operator can correct and retry.
func (s *AdminService) Submit(ctx context.Context) (domain.Content, error) {
	token, draft, err := s.begin(ActionSubmit)
	if err != nil {
		return domain.Content{}, err
	}

	rec := draft.Normalize(s.now())
	if err := rec.Validate(); err != nil {
		s.finish(ActionSubmit, token, func() {
			s.noticeLocked("Ошибка", err.Error(), true)
		})
		return domain.Content{}, err
	}

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		s.finish(ActionSubmit, token, func() {
			s.noticeLocked("Ошибка", UserMessage(err, "Не удалось добавить контент"), true)
		})
		return domain.Content{}, err
	}

	s.finish(ActionSubmit, token, func() {
		s.form = domain.EmptyDraft()
		s.noticeLocked("Успешно!", "Контент добавлен в базу данных", false)
	})
	s.publish("admin.content.created", created)
	return created, nil
}

// AISearch fills the form from whatever the model knows about the
// query. Only fields present in the answer are merged; the operator's
// own text survives everywhere else.
func (s *AdminService) AISearch(ctx context.Context, query string) (domain.Draft, error) {
	token, _, err := s.begin(ActionSearch)
	if err != nil {
		return domain.Draft{}, err
	}

	sugg, err := s.search.Search(ctx, query)
	if err != nil {
		s.finish(ActionSearch, token, func() {
			s.noticeLocked("Ошибка", UserMessage(err, "Ничего не найдено"), true)
		})
		return domain.Draft{}, err
	}

	var merged domain.Draft
	s.finish(ActionSearch, token, func() {
		s.mergeSuggestionLocked(sugg)
		s.noticeLocked("Найдено!", "Форма заполнена данными из поиска", false)
		merged = s.form
	})
	return merged, nil
}

func (s *AdminService) mergeSuggestionLocked(sugg Suggestion) {
	if sugg.Title != nil {
		s.form.Title = *sugg.Title
	}
	if sugg.Description != nil {
		s.form.Description = *sugg.Description
	}
	if sugg.Genre != nil {
		s.form.Genre = *sugg.Genre
	}
	if sugg.Rating != nil {
		s.form.Rating = strconv.FormatFloat(*sugg.Rating, 'f', -1, 64)
	}
	if sugg.Year != nil {
		s.form.Year = strconv.Itoa(*sugg.Year)
	}
	if sugg.Kind != nil {
		if kind, err := domain.ParseKind(*sugg.Kind); err == nil {
			s.form.Kind = string(kind)
		}
	}
}

// GeneratePoster builds a poster for the current draft and puts the
// resulting URL into its image field.
func (s *AdminService) GeneratePoster(ctx context.Context) (PosterResult, error) {
	token, draft, err := s.begin(ActionPoster)
	if err != nil {
		return PosterResult{}, err
	}

	res, err := s.poster.Generate(ctx, draft.Title, draft.Description, draft.Genre)
	if err != nil {
		s.finish(ActionPoster, token, func() {
			s.noticeLocked("Ошибка", UserMessage(err, "Не удалось сгенерировать постер"), true)
		})
		return PosterResult{}, err
	}

	s.finish(ActionPoster, token, func() {
		s.form.ImageURL = res.ImageURL
		s.noticeLocked("Готово!", "Постер сгенерирован", false)
	})
	return res, nil
}

// TestCredentials runs the GigaChat diagnostic and keeps the report
// for later display.
func (s *AdminService) TestCredentials(ctx context.Context, secrets []string, query string) (CredentialReport, error) {
	token, _, err := s.begin(ActionCredentials)
	if err != nil {
		return CredentialReport{}, err
	}

	report, err := s.creds.Test(ctx, secrets, query)
	if err != nil {
		s.finish(ActionCredentials, token, func() {
			s.noticeLocked("Ошибка", UserMessage(err, "Диагностика не удалась"), true)
		})
		return CredentialReport{}, err
	}

	s.finish(ActionCredentials, token, func() {
		s.credReport = &report
	})
	return report, nil
}

// begin claims the busy flag for an action and snapshots the form. A
// second call before finish returns ErrBusy, the disabled-button
// equivalent.
func (s *AdminService) begin(action Action) (uint64, domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[action] {
		return 0, domain.Draft{}, ErrBusy
	}
	s.busy[action] = true
	s.seq[action]++
	return s.seq[action], s.form, nil
}

// finish clears the busy flag and, when the token is still the newest
// issued for the action, applies the state mutation. Stale results are
// dropped on the floor.
func (s *AdminService) finish(action Action, token uint64, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy[action] = false
	if token != s.seq[action] {
		s.logger.Debug().Str("action", string(action)).Uint64("token", token).Msg("discarding stale action result")
		return
	}
	if apply != nil {
		apply()
	}
}

func (s *AdminService) noticeLocked(title, detail string, isErr bool) {
	n := Notice{
		ID:     xid.New().String(),
		Time:   s.now().UTC(),
		Title:  title,
		Detail: detail,
		Error:  isErr,
	}
	s.notices = append(s.notices, n)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
	if b, err := json.Marshal(n); err == nil && s.bus != nil {
		s.bus.Publish("admin.notice", b)
	}
}

func (s *AdminService) publish(topic string, payload any) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.bus.Publish(topic, b)
}
