package domain

import (
	"fmt"
	"strings"
)

// ContentType is the kind of content a spin can reveal
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// ContentTypes lists every valid content type
var ContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries}

// ParseContentType validates a raw type parameter
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentTypeMovie:
		return ContentTypeMovie, nil
	case ContentTypeSeries:
		return ContentTypeSeries, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// ContentItem is a movie or series candidate.
// Raw signals are pointers so that missing data can be told apart from zero.
type ContentItem struct {
	ID               int64       `json:"id"`
	Type             ContentType `json:"type"`
	Title            string      `json:"title"`
	CriticsScore     *int        `json:"critics_score"`
	AudienceScore    *int        `json:"audience_score"`
	IMDBRating       *float64    `json:"imdb_rating"`
	IsCertifiedFresh bool        `json:"is_certified_fresh"`
	IsVerifiedHot    bool        `json:"is_verified_hot"`
	IsActive         bool        `json:"is_active"`
	PosterURL        string      `json:"poster_url,omitempty"`
	Year             int         `json:"year,omitempty"`

	// QualityScore is the cached score column. It is never authoritative.
	QualityScore *int `json:"quality_score,omitempty"`
}
