package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock to prevent concurrent migrations from multiple replicas.
	const lockID = 974112358 // arbitrary number for this application's migration lock

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if !acquired {
		// Another replica is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}

	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id BIGSERIAL PRIMARY KEY,
			quote TEXT NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			theme TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS quotes_generated_at_idx ON quotes (generated_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) InsertQuote(ctx context.Context, text string, generatedAt time.Time, theme string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quotes (quote, generated_at, theme) VALUES ($1, $2, $3) RETURNING id`,
		text, generatedAt, theme,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quote: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListQuotes(ctx context.Context, limit int) ([]Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quote, generated_at, theme, created_at FROM quotes ORDER BY generated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotes(rows)
}

func (s *PostgresStore) AllQuotes(ctx context.Context) ([]Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quote, generated_at, theme, created_at FROM quotes ORDER BY generated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotes(rows)
}

func (s *PostgresStore) DeleteQuote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanQuotes(rows *sql.Rows) ([]Quote, error) {
	var out []Quote
	for rows.Next() {
		var q Quote
		var theme sql.NullString
		if err := rows.Scan(&q.ID, &q.Text, &q.GeneratedAt, &theme, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Theme = theme.String
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
