package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CatalogMovie is the movie metadata returned by the external movie catalog.
// It is also the snapshot stored in the movie cache.
type CatalogMovie struct {
	ID              string `json:"id"`
	Rank            string `json:"rank"`
	Title           string `json:"title"`
	FullTitle       string `json:"fullTitle"`
	Year            string `json:"year"`
	Crew            string `json:"crew"`
	Image           string `json:"image"`
	ImDbRating      string `json:"imDbRating"`
	ImDbRatingCount string `json:"imDbRatingCount"`
}

// Movie is the copy of catalog data owned by a showtime.
type Movie struct {
	ID          int
	ImdbID      string
	Title       string
	Stars       string
	ReleaseDate *time.Time
	Rating      decimal.NullDecimal
}

// ReleaseDatePolicy picks a concrete release date when the catalog only knows the year.
type ReleaseDatePolicy func(year int) time.Time

// JanuaryFirst is the default ReleaseDatePolicy.
func JanuaryFirst(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// NewMovieSnapshot copies the catalog fields a showtime keeps. A year that cannot be parsed
// leaves the release date empty and an unparsable rating leaves the rating invalid.
func NewMovieSnapshot(cm *CatalogMovie, policy ReleaseDatePolicy) Movie {
	if policy == nil {
		policy = JanuaryFirst
	}

	movie := Movie{
		ImdbID: cm.ID,
		Title:  cm.Title,
		Stars:  cm.Crew,
	}

	year, err := strconv.Atoi(strings.TrimSpace(cm.Year))
	if err == nil && year > 0 {
		releaseDate := policy(year)
		movie.ReleaseDate = &releaseDate
	}

	rating, err := decimal.NewFromString(strings.TrimSpace(cm.ImDbRating))
	if err == nil {
		movie.Rating = decimal.NewNullDecimal(rating)
	}

	return movie
}
