package catalog

import (
	"strings"

	"github.com/cinegate/cinegate/internal/domain"
)

// Filter returns the elements of items visible under tab, preserving
// source order. The query applies only to the search tab; an empty
// query matches everything.
func Filter(items []domain.Content, tab domain.Tab, query string) []domain.Content {
	out := make([]domain.Content, 0, len(items))
	q := strings.ToLower(query)
	for _, it := range items {
		if visible(it, tab, q) {
			out = append(out, it)
		}
	}
	return out
}

func visible(it domain.Content, tab domain.Tab, q string) bool {
	switch tab {
	case domain.TabMovies:
		return it.Kind == domain.KindMovie
	case domain.TabSeries:
		return it.Kind == domain.KindSeries
	case domain.TabTV:
		return it.Kind == domain.KindTV
	case domain.TabFavorites:
		return it.Favorite
	case domain.TabSearch:
		return strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Genre), q)
	default:
		// home, and the aggregate tabs which don't filter the list.
		return true
	}
}

// Genres returns each distinct genre exactly once, in first-occurrence
// order.
func Genres(items []domain.Content) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Genre]; ok {
			continue
		}
		seen[it.Genre] = struct{}{}
		out = append(out, it.Genre)
	}
	return out
}
