package domain

import (
	"slices"
	"time"
)

// MissingSeats returns the requested seats that do not exist in the auditorium layout.
func MissingSeats(requested []Seat, auditorium *Auditorium) []Seat {
	layout := make(map[Seat]struct{}, len(auditorium.Seats))
	for _, s := range auditorium.Seats {
		layout[s] = struct{}{}
	}

	var missing []Seat
	for _, s := range requested {
		if _, ok := layout[s]; !ok {
			missing = append(missing, s)
		}
	}

	return missing
}

// AreContiguous reports whether the seats lie in a single row and form one unbroken run
// of consecutive seat numbers. Duplicated seats break the run.
func AreContiguous(seats []Seat) bool {
	if len(seats) == 0 {
		return false
	}

	sorted := slices.Clone(seats)
	slices.SortFunc(sorted, func(a, b Seat) int {
		if a.Row != b.Row {
			return int(a.Row) - int(b.Row)
		}
		return int(a.SeatNumber) - int(b.SeatNumber)
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Row != prev.Row || cur.SeatNumber-prev.SeatNumber != 1 {
			return false
		}
	}

	return true
}

// OccupiedSeats returns the requested seats held by a paid ticket or an unexpired unpaid one.
func OccupiedSeats(requested []Seat, tickets []Ticket, now time.Time, expiry time.Duration) []Seat {
	held := make(map[Seat]struct{})
	for i := range tickets {
		if !tickets[i].Blocking(now, expiry) {
			continue
		}
		for _, s := range tickets[i].Seats {
			held[s] = struct{}{}
		}
	}

	var occupied []Seat
	for _, s := range requested {
		if _, ok := held[s]; ok {
			occupied = append(occupied, s)
		}
	}

	return occupied
}
