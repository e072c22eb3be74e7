package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"craigsbot/internal/config"
	"craigsbot/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicate is returned by Insert when a row with the same listing id
// already exists.
var ErrDuplicate = errors.New("listing already exists")

// Store persists listings in Postgres. One instance is shared by all
// scans for the lifetime of the process.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres using the given configuration
func NewStore(cfg config.DBConfig) (*Store, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	log.Println("Successfully connected to Postgres")

	return &Store{pool: pool}, nil
}

// EnsureSchema creates the listings table if it does not exist. The
// primary key on id is what makes a racing duplicate insert fail cleanly
// instead of producing a second row.
func (s *Store) EnsureSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS listings (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		price BIGINT,
		bedrooms INT,
		size TEXT,
		location TEXT,
		posted_on DATE NOT NULL
	);`

	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CountByID reports how many stored rows carry the given listing id.
func (s *Store) CountByID(ctx context.Context, id int) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM listings WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listing %d: %w", id, err)
	}
	return count, nil
}

// Insert persists one listing record. A duplicate id fails with
// ErrDuplicate so callers can tell the benign overlap race apart from a
// real store failure.
func (s *Store) Insert(ctx context.Context, rec models.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO listings (id, title, url, price, bedrooms, size, location, posted_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Title, rec.URL, rec.Price, rec.Bedrooms, rec.Size, rec.Location, rec.PostedOn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert listing %d: %w", rec.ID, err)
	}
	return nil
}

// Close releases the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
