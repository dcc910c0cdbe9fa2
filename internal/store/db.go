package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Store keeps a history of pipeline runs for change reporting. The catalog
// itself lives in the batch JSON file; the database only remembers how each
// run went.
type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

type Run struct {
	ID          int       `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	Products    int       `json:"products"`
	NewProducts int       `json:"new_products"`
	Updated     int       `json:"updated_products"`
	Written     int       `json:"files_written"`
	Errors      int       `json:"errors"`
	Triggered   bool      `json:"build_triggered"`
}

func (s *Store) SaveRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (started_at, duration_ms, products, new_products, updated_products, files_written, errors, build_triggered)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, run.StartedAt, run.DurationMS, run.Products, run.NewProducts, run.Updated, run.Written, run.Errors, run.Triggered)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, duration_ms, products, new_products, updated_products, files_written, errors, build_triggered
FROM runs
ORDER BY started_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.DurationMS, &r.Products, &r.NewProducts,
			&r.Updated, &r.Written, &r.Errors, &r.Triggered); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
