package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/TomaszChromy/CarRentalManager/internal/catalog"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

// Decimal columns are read back as text, the models carry them as
// 2-decimal strings.
const carColumns = `id, make, model, year, category, transmission, fuel_type, seats,
	luggage, has_air_conditioning, fuel_consumption::text, price_per_day::text, image_url, status,
	location, plate_number, last_service_date, rating::text, review_count`

func scanCar(row rowScanner, car *models.Car) error {
	return row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Category,
		&car.Transmission,
		&car.FuelType,
		&car.Seats,
		&car.Luggage,
		&car.HasAirConditioning,
		&car.FuelConsumption,
		&car.PricePerDay,
		&car.ImageURL,
		&car.Status,
		&car.Location,
		&car.PlateNumber,
		&car.LastServiceDate,
		&car.Rating,
		&car.ReviewCount,
	)
}

func (p *PostgresDBRepo) GetCar(ctx context.Context, id int) (models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `select ` + carColumns + ` from cars where id = $1`

	var car models.Car
	err := scanCar(p.pool.QueryRow(ctx, query, id), &car)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Car{}, ErrNotFound
		}
		return models.Car{}, err
	}
	return car, nil
}

func (p *PostgresDBRepo) GetAllCars(ctx context.Context, filters catalog.CarFilters) ([]models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	conditions := []string{}
	args := []any{}

	addEq := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	addEq("category", filters.Category)
	addEq("transmission", filters.Transmission)
	addEq("fuel_type", filters.FuelType)
	addEq("location", filters.Location)
	addEq("status", filters.Status)

	// price_per_day is a decimal column, the band is inclusive
	if filters.MinPrice != nil {
		args = append(args, *filters.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price_per_day >= $%d", len(args)))
	}
	if filters.MaxPrice != nil {
		args = append(args, *filters.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price_per_day <= $%d", len(args)))
	}

	query := `select ` + carColumns + ` from cars`
	if len(conditions) > 0 {
		query += ` where ` + strings.Join(conditions, " and ")
	}
	query += ` order by id`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []models.Car{}
	for rows.Next() {
		var car models.Car
		if err := scanCar(rows, &car); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (p *PostgresDBRepo) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	status := car.Status
	if status == "" {
		status = models.CarAvailable
	}

	// New cars start with the default rating and no reviews
	query := `insert into cars (make, model, year, category, transmission, fuel_type,
			seats, luggage, has_air_conditioning, fuel_consumption, price_per_day,
			image_url, status, location, plate_number, last_service_date, rating, review_count)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, '5.0', 0)
		returning ` + carColumns

	var created models.Car
	err := scanCar(p.pool.QueryRow(ctx, query,
		car.Make,
		car.Model,
		car.Year,
		car.Category,
		car.Transmission,
		car.FuelType,
		car.Seats,
		car.Luggage,
		car.HasAirConditioning,
		car.FuelConsumption,
		car.PricePerDay,
		car.ImageURL,
		status,
		car.Location,
		car.PlateNumber,
		car.LastServiceDate,
	), &created)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Car{}, ErrDuplicate
		}
		return models.Car{}, err
	}
	return created, nil
}

func (p *PostgresDBRepo) UpdateCar(ctx context.Context, id int, updates CarUpdate) (models.Car, error) {
	set := &setClause{}
	if updates.Make != nil {
		set.add("make", *updates.Make)
	}
	if updates.Model != nil {
		set.add("model", *updates.Model)
	}
	if updates.Year != nil {
		set.add("year", *updates.Year)
	}
	if updates.Category != nil {
		set.add("category", *updates.Category)
	}
	if updates.Transmission != nil {
		set.add("transmission", *updates.Transmission)
	}
	if updates.FuelType != nil {
		set.add("fuel_type", *updates.FuelType)
	}
	if updates.Seats != nil {
		set.add("seats", *updates.Seats)
	}
	if updates.Luggage != nil {
		set.add("luggage", *updates.Luggage)
	}
	if updates.HasAirConditioning != nil {
		set.add("has_air_conditioning", *updates.HasAirConditioning)
	}
	if updates.FuelConsumption != nil {
		set.add("fuel_consumption", *updates.FuelConsumption)
	}
	if updates.PricePerDay != nil {
		set.add("price_per_day", *updates.PricePerDay)
	}
	if updates.ImageURL != nil {
		set.add("image_url", *updates.ImageURL)
	}
	if updates.Status != nil {
		set.add("status", *updates.Status)
	}
	if updates.Location != nil {
		set.add("location", *updates.Location)
	}
	if updates.PlateNumber != nil {
		set.add("plate_number", *updates.PlateNumber)
	}
	if updates.LastServiceDate != nil {
		set.add("last_service_date", *updates.LastServiceDate)
	}
	if updates.Rating != nil {
		set.add("rating", *updates.Rating)
	}
	if updates.ReviewCount != nil {
		set.add("review_count", *updates.ReviewCount)
	}
	if set.empty() {
		return p.GetCar(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	set.args = append(set.args, id)
	query := `update cars set ` + strings.Join(set.parts, ", ") +
		` where id = $` + itoa(len(set.args)) + ` returning ` + carColumns

	var car models.Car
	err := scanCar(p.pool.QueryRow(ctx, query, set.args...), &car)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Car{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return models.Car{}, ErrDuplicate
		}
		return models.Car{}, err
	}
	return car, nil
}

func (p *PostgresDBRepo) DeleteCar(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx, `delete from cars where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReleaseCar returns a rented car to the available pool.
func (p *PostgresDBRepo) ReleaseCar(ctx context.Context, carID int) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx,
		`update cars set status = $1 where id = $2 and status = $3`,
		models.CarAvailable, carID, models.CarRented,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Already available or in maintenance, nothing to release
		return nil
	}
	return nil
}
