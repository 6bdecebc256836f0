package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

type PostgresAuditoriumRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAuditoriumRepository(db *pgxpool.Pool) *PostgresAuditoriumRepository {
	return &PostgresAuditoriumRepository{
		db: db,
	}
}

func (p *PostgresAuditoriumRepository) GetById(ctx context.Context, id int) (*domain.Auditorium, error) {
	query := `
		SELECT a.id, s.seat_row, s.seat_number
		FROM auditoriums a
		LEFT JOIN seats s ON s.auditorium_id = a.id
		WHERE a.id = $1
		ORDER BY s.seat_row, s.seat_number
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auditorium *domain.Auditorium

	for rows.Next() {
		var (
			auditoriumID int
			row          *int16
			number       *int16
		)

		err = rows.Scan(&auditoriumID, &row, &number)
		if err != nil {
			return nil, err
		}

		if auditorium == nil {
			auditorium = &domain.Auditorium{ID: auditoriumID}
		}

		if row != nil && number != nil {
			auditorium.Seats = append(auditorium.Seats, domain.Seat{Row: *row, SeatNumber: *number})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if auditorium == nil {
		return nil, domain.ErrRecordNotFound
	}

	return auditorium, nil
}
