package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

const userColumns = `id, username, email, password, first_name, last_name, phone,
	license_number, role, loyalty_points, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.LicenseNumber,
		&user.Role,
		&user.LoyaltyPoints,
		&user.CreatedAt,
	)
}

func (p *PostgresDBRepo) GetUser(ctx context.Context, id int) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `select ` + userColumns + ` from users where id = $1`

	var user models.User
	err := scanUser(p.pool.QueryRow(ctx, query, id), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (p *PostgresDBRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return p.getUserBy(ctx, "username", username)
}

func (p *PostgresDBRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return p.getUserBy(ctx, "email", email)
}

func (p *PostgresDBRepo) getUserBy(ctx context.Context, column, value string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `select ` + userColumns + ` from users where ` + column + ` = $1`

	var user models.User
	err := scanUser(p.pool.QueryRow(ctx, query, value), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (p *PostgresDBRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `insert into users (username, email, password, first_name, last_name, phone,
			license_number, role, loyalty_points, created_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
		returning ` + userColumns

	role := user.Role
	if role == "" {
		role = models.RoleCustomer
	}

	var created models.User
	err := scanUser(p.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.LicenseNumber,
		role,
		time.Now(),
	), &created)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return created, nil
}

func (p *PostgresDBRepo) UpdateUser(ctx context.Context, id int, updates UserUpdate) (models.User, error) {
	set := &setClause{}
	if updates.Username != nil {
		set.add("username", *updates.Username)
	}
	if updates.Email != nil {
		set.add("email", *updates.Email)
	}
	if updates.FirstName != nil {
		set.add("first_name", *updates.FirstName)
	}
	if updates.LastName != nil {
		set.add("last_name", *updates.LastName)
	}
	if updates.Phone != nil {
		set.add("phone", *updates.Phone)
	}
	if updates.LicenseNumber != nil {
		set.add("license_number", *updates.LicenseNumber)
	}
	if set.empty() {
		return p.GetUser(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	set.args = append(set.args, id)
	query := `update users set ` + strings.Join(set.parts, ", ") +
		` where id = $` + itoa(len(set.args)) + ` returning ` + userColumns

	var user models.User
	err := scanUser(p.pool.QueryRow(ctx, query, set.args...), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}
