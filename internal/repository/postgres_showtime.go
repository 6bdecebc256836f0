package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const showtimeWithMovieQuery = `
	SELECT s.id, s.auditorium_id, s.session_date,
		m.id, m.imdb_id, m.title, m.stars, m.release_date, m.rating
	FROM showtimes s
	JOIN movies m ON m.id = s.movie_id
`

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func scanShowtime(row pgx.Row, showtime *domain.Showtime) error {
	return row.Scan(
		&showtime.ID,
		&showtime.AuditoriumID,
		&showtime.SessionDate,
		&showtime.Movie.ID,
		&showtime.Movie.ImdbID,
		&showtime.Movie.Title,
		&showtime.Movie.Stars,
		&showtime.Movie.ReleaseDate,
		&showtime.Movie.Rating,
	)
}

func (p *PostgresShowtimeRepository) GetMatching(ctx context.Context, filter domain.ShowtimeFilter) ([]domain.Showtime, error) {
	query := showtimeWithMovieQuery + `
		WHERE s.imdb_id = $1 AND s.auditorium_id = $2 AND s.session_date = $3
	`

	rows, err := p.db.Query(ctx, query, filter.ImdbID, filter.AuditoriumID, filter.SessionDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = scanShowtime(rows, &showtime)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

// Create stores the showtime together with its movie snapshot. A showtime with the same
// movie, auditorium and session date yields domain.ErrDuplicateShowtime.
func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (imdb_id, title, stars, release_date, rating)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		movie := &showtime.Movie

		err := tx.QueryRow(ctx, query,
			movie.ImdbID,
			movie.Title,
			movie.Stars,
			movie.ReleaseDate,
			movie.Rating).Scan(&movie.ID)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO showtimes (movie_id, imdb_id, auditorium_id, session_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err = tx.QueryRow(ctx, query,
			movie.ID,
			movie.ImdbID,
			showtime.AuditoriumID,
			showtime.SessionDate).Scan(&showtime.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrDuplicateShowtime
			}

			return err
		}

		return nil
	})
}

func (p *PostgresShowtimeRepository) GetWithMovie(ctx context.Context, id int) (*domain.Showtime, error) {
	return getShowtime(ctx, p.db, id, "")
}

func getShowtime(ctx context.Context, q querier, id int, lock string) (*domain.Showtime, error) {
	query := showtimeWithMovieQuery + `WHERE s.id = $1 ` + lock

	var showtime domain.Showtime

	err := scanShowtime(q.QueryRow(ctx, query, id), &showtime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &showtime, nil
}
