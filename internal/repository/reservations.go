package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

const reservationColumns = `id, user_id, car_id, pickup_date, return_date,
	pickup_location, return_location, status, total_amount::text, extras, created_at`

func scanReservation(row rowScanner, res *models.Reservation) error {
	return row.Scan(
		&res.ID,
		&res.UserID,
		&res.CarID,
		&res.PickupDate,
		&res.ReturnDate,
		&res.PickupLocation,
		&res.ReturnLocation,
		&res.Status,
		&res.TotalAmount,
		&res.Extras,
		&res.CreatedAt,
	)
}

func (p *PostgresDBRepo) GetReservation(ctx context.Context, id int) (models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `select ` + reservationColumns + ` from reservations where id = $1`

	var res models.Reservation
	err := scanReservation(p.pool.QueryRow(ctx, query, id), &res)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, ErrNotFound
		}
		return models.Reservation{}, err
	}
	return res, nil
}

func (p *PostgresDBRepo) GetReservationsByUser(ctx context.Context, userID int) ([]models.Reservation, error) {
	userFilter := ReservationFilters{UserID: &userID}
	return p.GetAllReservations(ctx, userFilter)
}

func (p *PostgresDBRepo) GetAllReservations(ctx context.Context, filters ReservationFilters) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	conditions := []string{}
	args := []any{}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.UserID != nil {
		args = append(args, *filters.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conditions = append(conditions, fmt.Sprintf("pickup_date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conditions = append(conditions, fmt.Sprintf("return_date <= $%d", len(args)))
	}

	query := `select ` + reservationColumns + ` from reservations`
	if len(conditions) > 0 {
		query += ` where ` + strings.Join(conditions, " and ")
	}
	query += ` order by id`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// BookCar creates a reservation and flips the car to rented in one
// transaction. The status flip is a compare-and-swap on "available",
// so of two concurrent bookings for the same car exactly one commits;
// the other observes zero affected rows and gets ErrCarNotAvailable.
func (p *PostgresDBRepo) BookCar(ctx context.Context, reservation models.Reservation) (models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return models.Reservation{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`update cars set status = $1 where id = $2 and status = $3`,
		models.CarRented, reservation.CarID, models.CarAvailable,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := tx.QueryRow(ctx, `select status from cars where id = $1`, reservation.CarID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, ErrNotFound
		}
		if err != nil {
			return models.Reservation{}, err
		}
		return models.Reservation{}, ErrCarNotAvailable
	}

	status := reservation.Status
	if status == "" {
		status = models.ReservationConfirmed
	}
	extras := reservation.Extras
	if extras == nil {
		extras = []string{}
	}

	query := `insert into reservations (user_id, car_id, pickup_date, return_date,
			pickup_location, return_location, status, total_amount, extras, created_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning ` + reservationColumns

	var created models.Reservation
	err = scanReservation(tx.QueryRow(ctx, query,
		reservation.UserID,
		reservation.CarID,
		reservation.PickupDate,
		reservation.ReturnDate,
		reservation.PickupLocation,
		reservation.ReturnLocation,
		status,
		reservation.TotalAmount,
		extras,
		time.Now(),
	), &created)
	if err != nil {
		return models.Reservation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Reservation{}, err
	}
	return created, nil
}

func (p *PostgresDBRepo) UpdateReservation(ctx context.Context, id int, updates ReservationUpdate) (models.Reservation, error) {
	set := &setClause{}
	if updates.PickupDate != nil {
		set.add("pickup_date", *updates.PickupDate)
	}
	if updates.ReturnDate != nil {
		set.add("return_date", *updates.ReturnDate)
	}
	if updates.PickupLocation != nil {
		set.add("pickup_location", *updates.PickupLocation)
	}
	if updates.ReturnLocation != nil {
		set.add("return_location", *updates.ReturnLocation)
	}
	if updates.Status != nil {
		set.add("status", *updates.Status)
	}
	if updates.TotalAmount != nil {
		set.add("total_amount", *updates.TotalAmount)
	}
	if updates.Extras != nil {
		set.add("extras", *updates.Extras)
	}
	if set.empty() {
		return p.GetReservation(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return models.Reservation{}, err
	}
	defer tx.Rollback(ctx)

	// Status changes validate against the committed row under a lock so
	// concurrent updates cannot both pass from the same status.
	if updates.Status != nil {
		var current models.ReservationStatus
		err := tx.QueryRow(ctx, `select status from reservations where id = $1 for update`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, ErrNotFound
		}
		if err != nil {
			return models.Reservation{}, err
		}
		next := models.ReservationStatus(*updates.Status)
		if next != current && !current.CanTransitionTo(next) {
			return models.Reservation{}, ErrInvalidTransition
		}
	}

	set.args = append(set.args, id)
	query := `update reservations set ` + strings.Join(set.parts, ", ") +
		` where id = $` + itoa(len(set.args)) + ` returning ` + reservationColumns

	var res models.Reservation
	err = scanReservation(tx.QueryRow(ctx, query, set.args...), &res)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, ErrNotFound
		}
		return models.Reservation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Reservation{}, err
	}
	return res, nil
}
