package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// CreateForShowtime locks the showtime row for the rest of the transaction, so holds on
// the same showtime are decided one at a time against the committed ticket set.
func (p *PostgresTicketRepository) CreateForShowtime(
	ctx context.Context,
	showtimeID int,
	hold func(*domain.Showtime) (*domain.Ticket, error)) (*domain.Ticket, error) {

	var ticket *domain.Ticket

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		showtime, err := getShowtime(ctx, tx, showtimeID, "FOR UPDATE OF s")
		if err != nil {
			return err
		}

		showtime.Tickets, err = getTicketsByShowtime(ctx, tx, showtimeID)
		if err != nil {
			return err
		}

		ticket, err = hold(showtime)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO tickets (id, showtime_id, paid, created_time)
			VALUES ($1, $2, $3, $4)
		`

		_, err = tx.Exec(ctx, query, ticket.ID, ticket.ShowtimeID, ticket.Paid, ticket.CreatedTime)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(ticket.Seats))
		for _, seat := range ticket.Seats {
			rows = append(rows, []any{
				ticket.ID,
				showtime.AuditoriumID,
				seat.Row,
				seat.SeatNumber,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"ticket_seats"},
			[]string{"ticket_id", "auditorium_id", "seat_row", "seat_number"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `
		SELECT id, showtime_id, paid, created_time
		FROM tickets
		WHERE id = $1
	`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ShowtimeID,
		&ticket.Paid,
		&ticket.CreatedTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	query = `
		SELECT seat_row, seat_number
		FROM ticket_seats
		WHERE ticket_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.Row, &seat.SeatNumber)
		if err != nil {
			return nil, err
		}

		ticket.Seats = append(ticket.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// ConfirmPayment takes the same showtime lock as CreateForShowtime, so check sees the
// ticket as it stands after every reservation committed before it. A ticket that is
// already paid by the time of the update yields domain.ErrEditConflict.
func (p *PostgresTicketRepository) ConfirmPayment(ctx context.Context, ticket *domain.Ticket, check func(*domain.Ticket) error) error {
	locked := *ticket

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := getShowtime(ctx, tx, ticket.ShowtimeID, "FOR UPDATE OF s")
		if err != nil {
			return err
		}

		query := `
			SELECT paid, created_time
			FROM tickets
			WHERE id = $1
		`

		err = tx.QueryRow(ctx, query, ticket.ID).Scan(&locked.Paid, &locked.CreatedTime)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return err
		}

		err = check(&locked)
		if err != nil {
			return err
		}

		query = `
			UPDATE tickets
			SET paid = TRUE
			WHERE id = $1 AND NOT paid
		`

		result, err := tx.Exec(ctx, query, ticket.ID)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}

		return nil
	})
	if err != nil {
		return err
	}

	ticket.Paid = true
	ticket.CreatedTime = locked.CreatedTime

	return nil
}

func getTicketsByShowtime(ctx context.Context, q querier, showtimeID int) ([]domain.Ticket, error) {
	query := `
		SELECT t.id, t.showtime_id, t.paid, t.created_time, ts.seat_row, ts.seat_number
		FROM tickets t
		JOIN ticket_seats ts ON ts.ticket_id = t.id
		WHERE t.showtime_id = $1
		ORDER BY t.created_time, t.id
	`

	rows, err := q.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			ticket domain.Ticket
			seat   domain.Seat
		)

		err = rows.Scan(
			&ticket.ID,
			&ticket.ShowtimeID,
			&ticket.Paid,
			&ticket.CreatedTime,
			&seat.Row,
			&seat.SeatNumber,
		)
		if err != nil {
			return nil, err
		}

		i, ok := index[ticket.ID]
		if !ok {
			i = len(tickets)
			index[ticket.ID] = i
			tickets = append(tickets, ticket)
		}

		tickets[i].Seats = append(tickets[i].Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
