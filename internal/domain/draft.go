package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Draft is the admin form state: every field holds exactly what the
// operator typed, numeric fields included. Coercion happens at submit
// time via Normalize.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Rating      string `json:"rating"`
	Year        string `json:"year"`
	Kind        string `json:"type"`
	ImageURL    string `json:"image_url"`
	VideoURL    string `json:"video_url"`
}

func EmptyDraft() Draft {
	return Draft{Kind: string(KindMovie)}
}

// NewContent is the flat record the create endpoint accepts.
type NewContent struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Year        int     `json:"year"`
	Kind        Kind    `json:"type"`
	ImageURL    string  `json:"image_url"`
	VideoURL    string  `json:"video_url"`
}

// Normalize coerces the free-text numeric fields: an unparseable rating
// becomes 0, an unparseable year becomes the current calendar year.
func (d Draft) Normalize(now time.Time) NewContent {
	rating, err := strconv.ParseFloat(strings.TrimSpace(d.Rating), 64)
	if err != nil {
		rating = 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(d.Year))
	if err != nil {
		year = now.Year()
	}
	return NewContent{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Genre:       strings.TrimSpace(d.Genre),
		Rating:      rating,
		Year:        year,
		Kind:        Kind(strings.TrimSpace(d.Kind)),
		ImageURL:    strings.TrimSpace(d.ImageURL),
		VideoURL:    strings.TrimSpace(d.VideoURL),
	}
}

var ErrInvalidContent = errors.New("invalid content")

// Validate mirrors the store's own validation so obviously broken
// records never leave the gateway.
func (c NewContent) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidContent)
	}
	if utf8.RuneCountInString(c.Title) > 255 {
		return fmt.Errorf("%w: title too long (max 255)", ErrInvalidContent)
	}
	if c.Genre == "" {
		return fmt.Errorf("%w: genre is required", ErrInvalidContent)
	}
	if utf8.RuneCountInString(c.Genre) > 100 {
		return fmt.Errorf("%w: genre too long (max 100)", ErrInvalidContent)
	}
	if c.Rating < 0 || c.Rating > 10 {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrInvalidContent)
	}
	if c.Year < 1900 || c.Year > 2100 {
		return fmt.Errorf("%w: year must be between 1900 and 2100", ErrInvalidContent)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: type must be movie, series or tv", ErrInvalidContent)
	}
	return nil
}
