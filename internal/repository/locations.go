package repository

import (
	"context"

	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

const locationColumns = `id, name, address, city, is_active`

func scanLocation(row rowScanner, loc *models.Location) error {
	return row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.City,
		&loc.IsActive,
	)
}

func (p *PostgresDBRepo) GetActiveLocations(ctx context.Context) ([]models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `select ` + locationColumns + ` from locations where is_active = true order by id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := scanLocation(rows, &loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (p *PostgresDBRepo) CreateLocation(ctx context.Context, location models.Location) (models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `insert into locations (name, address, city, is_active)
		values ($1, $2, $3, $4)
		returning ` + locationColumns

	var created models.Location
	err := scanLocation(p.pool.QueryRow(ctx, query,
		location.Name,
		location.Address,
		location.City,
		location.IsActive,
	), &created)
	if err != nil {
		return models.Location{}, err
	}
	return created, nil
}
