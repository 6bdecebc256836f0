package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

func (app *Application) SearchMovieHandler(w http.ResponseWriter, r *http.Request) {
	params := api.MovieSearchParams{
		Text: r.URL.Query().Get("text"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movies.Search(r.Context(), params.Text)
	if err != nil {
		if errors.Is(err, catalog.ErrSearchUnsupported) {
			app.notImplementedResponse(w, r)
			return
		}
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toCatalogMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movies.ListMovies(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrListUnsupported):
			app.notImplementedResponse(w, r)
		case errors.Is(err, catalog.ErrUnavailable):
			app.catalogUnavailableResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.CatalogMovieListResponse{
		Movies: make([]api.CatalogMovieResponse, 0, len(movies)),
	}
	for i := range movies {
		resp.Movies = append(resp.Movies, toCatalogMovieResponse(&movies[i]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toCatalogMovieResponse(movie *domain.CatalogMovie) api.CatalogMovieResponse {
	return api.CatalogMovieResponse{
		Id:         movie.ID,
		Title:      movie.Title,
		FullTitle:  movie.FullTitle,
		Year:       movie.Year,
		Crew:       movie.Crew,
		Image:      movie.Image,
		ImDbRating: movie.ImDbRating,
	}
}
