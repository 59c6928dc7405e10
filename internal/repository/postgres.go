package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = time.Second * 3

// PostgresDBRepo is the pgx-backed record store.
type PostgresDBRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo wraps an existing connection pool.
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresDBRepo {
	return &PostgresDBRepo{pool: pool}
}

// ConnectPostgres opens a connection pool and verifies it with a ping.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

func (p *PostgresDBRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases the underlying pool.
func (p *PostgresDBRepo) Close() {
	p.pool.Close()
}

// isUniqueViolation reports whether err is a Postgres unique
// constraint violation (duplicate username, email or plate number).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// setClause collects "col = $n" fragments for partial updates.
type setClause struct {
	parts []string
	args  []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.parts) == 0
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
