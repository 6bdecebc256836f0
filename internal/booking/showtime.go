package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

type CreateShowtimeInput struct {
	MovieID      string
	AuditoriumID int
	SessionDate  time.Time
}

type ShowtimeSummary struct {
	ID           int
	MovieID      string
	MovieTitle   string
	SessionDate  time.Time
	AuditoriumID int
}

// CreateShowtime schedules a catalog movie in an auditorium. The duplicate check runs
// before the catalog is contacted.
func (s *Service) CreateShowtime(ctx context.Context, input CreateShowtimeInput) (*ShowtimeSummary, error) {
	filter := domain.ShowtimeFilter{
		ImdbID:       input.MovieID,
		AuditoriumID: input.AuditoriumID,
		SessionDate:  input.SessionDate,
	}

	existing, err := s.showtimes.GetMatching(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		return nil, duplicateShowtimeError(input)
	}

	catalogMovie, err := s.movies.GetMovie(ctx, input.MovieID)
	if err != nil {
		return nil, err
	}

	showtime := &domain.Showtime{
		AuditoriumID: input.AuditoriumID,
		SessionDate:  input.SessionDate,
		Movie:        domain.NewMovieSnapshot(catalogMovie, s.releaseDate),
	}

	err = s.showtimes.Create(ctx, showtime)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateShowtime) {
			return nil, duplicateShowtimeError(input)
		}
		return nil, err
	}

	s.logger.Info("showtime created",
		"showtime_id", showtime.ID,
		"movie_id", input.MovieID,
		"auditorium_id", input.AuditoriumID)

	return &ShowtimeSummary{
		ID:           showtime.ID,
		MovieID:      showtime.Movie.ImdbID,
		MovieTitle:   showtime.Movie.Title,
		SessionDate:  showtime.SessionDate,
		AuditoriumID: showtime.AuditoriumID,
	}, nil
}

func duplicateShowtimeError(input CreateShowtimeInput) *domain.ConflictError {
	return &domain.ConflictError{
		Message: fmt.Sprintf("showtime for movie %s in auditorium %d at %s already exists",
			input.MovieID, input.AuditoriumID, input.SessionDate.Format(time.RFC3339)),
	}
}
