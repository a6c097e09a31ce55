package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
	KindTV     Kind = "tv"
)

var ErrUnknownKind = errors.New("unknown content kind")

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMovie:
		return KindMovie, nil
	case KindSeries:
		return KindSeries, nil
	case KindTV:
		return KindTV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries || k == KindTV
}

type PlaybackMode string

const (
	// PlaybackLive: TV channels play a live stream (HLS/RTMP).
	PlaybackLive PlaybackMode = "live"
	// PlaybackVideo: movies and series play a direct file.
	PlaybackVideo PlaybackMode = "video"
)

func (k Kind) Playback() PlaybackMode {
	if k == KindTV {
		return PlaybackLive
	}
	return PlaybackVideo
}

// Content is a catalog entry as served by the remote store.
// IDs are assigned server-side; Favorite is client-local and never
// written back.
type Content struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Year        int     `json:"year"`
	Kind        Kind    `json:"type"`
	ImageURL    string  `json:"imageUrl"`
	VideoURL    string  `json:"videoUrl,omitempty"`
	Favorite    bool    `json:"isFavorite"`
}
