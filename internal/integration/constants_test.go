package integration_test

import "time"

const (
	TestCatalogAPIKey = "integration-key"

	// Movie served by the fake catalog
	TestMovieImdbID    = "tt0111161"
	TestMovieTitle     = "The Shawshank Redemption"
	TestMovieFullTitle = "The Shawshank Redemption (1994)"
	TestMovieYear      = "1994"
	TestMovieCrew      = "Frank Darabont (dir.), Tim Robbins, Morgan Freeman"
	TestMovieRating    = "9.2"

	// Seeded by the migrations with 28 rows of 22 seats
	TestAuditoriumID = 1
)

var (
	TestSessionDate = time.Now().AddDate(0, 1, 0).UTC().Truncate(time.Second)
)
