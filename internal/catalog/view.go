package catalog

import (
	"sync"

	"github.com/cinegate/cinegate/internal/domain"
)

// View is the owned state of the catalog screen: the fetched item
// list, the active tab, the search query and the player selection.
// All mutation goes through methods; there is no shared global.
type View struct {
	mu      sync.Mutex
	items   []domain.Content
	tab     domain.Tab
	query   string
	loading bool

	selectedID int
	playerOpen bool
	views      int

	// fetchSeq is the newest issued fetch token. A completion carrying
	// an older token is stale and gets discarded.
	fetchSeq uint64
}

func NewView() *View {
	return &View{tab: domain.TabHome}
}

// State is a point-in-time snapshot of the view for rendering.
type State struct {
	Tab     domain.Tab       `json:"tab"`
	Query   string           `json:"query,omitempty"`
	Loading bool             `json:"loading"`
	Items   []domain.Content `json:"items"`
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		Tab:     v.tab,
		Query:   v.query,
		Loading: v.loading,
		Items:   Filter(v.items, v.tab, v.query),
	}
}

func (v *View) SetTab(tab domain.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = tab
}

func (v *View) Tab() domain.Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
}

func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Items returns a copy of the full fetched list, unfiltered.
func (v *View) Items() []domain.Content {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Content(nil), v.items...)
}

// Visible returns the subset for the active tab and query, preserving
// source order.
func (v *View) Visible() []domain.Content {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.items, v.tab, v.query)
}

// VisibleUnder computes the subset for an arbitrary tab and query
// without touching the active selection.
func (v *View) VisibleUnder(tab domain.Tab, query string) []domain.Content {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.items, tab, query)
}

func (v *View) Genres() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Genres(v.items)
}

// Replace swaps in a freshly fetched list wholesale.
func (v *View) Replace(items []domain.Content) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.replaceLocked(items)
}

func (v *View) replaceLocked(items []domain.Content) {
	v.items = append([]domain.Content(nil), items...)
}

// ToggleFavorite flips the favorite flag of the item with the given id
// and returns its new state. The flag lives only in this process; it
// is never written back to the store.
func (v *View) ToggleFavorite(id int) (domain.Content, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items[i].Favorite = !v.items[i].Favorite
			return v.items[i], true
		}
	}
	return domain.Content{}, false
}

// OpenPlayer selects an item for playback and counts the view.
func (v *View) OpenPlayer(id int) (domain.Content, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.selectedID = id
			v.playerOpen = true
			v.views++
			return v.items[i], true
		}
	}
	return domain.Content{}, false
}

func (v *View) ClosePlayer() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playerOpen = false
}

// Player returns the current selection and whether the player is open.
func (v *View) Player() (domain.Content, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.playerOpen {
		return domain.Content{}, false
	}
	for i := range v.items {
		if v.items[i].ID == v.selectedID {
			return v.items[i], true
		}
	}
	return domain.Content{}, false
}

// Profile is the derived aggregate behind the profile tab.
type Profile struct {
	Favorites int `json:"favorites"`
	Views     int `json:"views"`
}

func (v *View) Profile() Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := Profile{Views: v.views}
	for i := range v.items {
		if v.items[i].Favorite {
			p.Favorites++
		}
	}
	return p
}

// BeginFetch marks the view loading and issues the token identifying
// this fetch.
func (v *View) BeginFetch() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fetchSeq++
	v.loading = true
	return v.fetchSeq
}

// CompleteFetch installs the fetched list if token is still the newest
// issued one. Stale completions are reported and discarded.
func (v *View) CompleteFetch(token uint64, items []domain.Content) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.fetchSeq {
		return false
	}
	v.loading = false
	v.replaceLocked(items)
	return true
}

// FailFetch clears the loading flag for the newest fetch. The item
// list is left untouched.
func (v *View) FailFetch(token uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.fetchSeq {
		return false
	}
	v.loading = false
	return true
}
