package analytics

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// PostgresStore keeps events in Postgres, for deployments with DATABASE_URL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pgx pool and runs schema migrations.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	st := &PostgresStore{pool: pool}
	if err := st.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("analytics postgres connected", slog.String("addr", config.ConnConfig.Host))
	return st, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// migrationFiles returns the embedded schema files in apply order.
func migrationFiles() ([]string, error) {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	names, err := migrationFiles()
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", name, err)
		}
		slog.Debug("analytics migration applied", slog.String("file", name))
	}
	return nil
}

func (s *PostgresStore) Record(ctx context.Context, ev Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO video_events (event, instance_id, provider, video_id, title, page_url, percent, position_sec, duration_sec, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(ev.Name), ev.InstanceID, ev.Provider, ev.VideoID, ev.Title, ev.PageURL,
		ev.Percent, ev.CurrentTime, ev.Duration, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("analytics postgres: insert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Summary(ctx context.Context, videoID string) (Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT event, COUNT(*) FROM video_events
		 WHERE $1 = '' OR video_id = $1
		 GROUP BY event`, videoID)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics postgres: summary: %w", err)
	}
	defer rows.Close()

	sum := newSummary(videoID)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return Summary{}, fmt.Errorf("analytics postgres: scan: %w", err)
		}
		sum.add(Name(name), n)
	}
	return sum, rows.Err()
}
