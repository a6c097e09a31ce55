package domain

import (
	"fmt"
	"strings"
)

// Tab is a client-side view selector, not a server-side route.
type Tab string

const (
	TabHome      Tab = "home"
	TabMovies    Tab = "movies"
	TabSeries    Tab = "series"
	TabTV        Tab = "tv"
	TabGenres    Tab = "genres"
	TabSearch    Tab = "search"
	TabFavorites Tab = "favorites"
	TabProfile   Tab = "profile"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabHome:
		return TabHome, nil
	case TabMovies:
		return TabMovies, nil
	case TabSeries:
		return TabSeries, nil
	case TabTV:
		return TabTV, nil
	case TabGenres:
		return TabGenres, nil
	case TabSearch:
		return TabSearch, nil
	case TabFavorites:
		return TabFavorites, nil
	case TabProfile:
		return TabProfile, nil
	default:
		return "", fmt.Errorf("unknown tab: %q", s)
	}
}

// IsAggregate reports whether the tab renders a derived aggregate
// (genre list, profile card) instead of the filtered item list.
func (t Tab) IsAggregate() bool {
	return t == TabGenres || t == TabProfile
}
