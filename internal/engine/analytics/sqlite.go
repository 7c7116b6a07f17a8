package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anatolykoptev/go_video/internal/engine"
)

var (
	storeDB   *sql.DB
	storeOnce sync.Once
	storeErr  error
)

// sqlitePath returns ANALYTICS_DB_PATH, or ~/.go_video/analytics.db.
func sqlitePath() string {
	if p := engine.Cfg.AnalyticsDBPath; p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".go_video", "analytics.db")
}

// openStoreDB opens (or creates) the SQLite analytics database.
func openStoreDB() (*sql.DB, error) {
	storeOnce.Do(func() {
		path := sqlitePath()
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0750); err != nil {
			storeErr = fmt.Errorf("analytics: mkdir %s: %w", dir, err)
			return
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			storeErr = fmt.Errorf("analytics: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initStoreSchema(db); err != nil {
			storeErr = fmt.Errorf("analytics: init schema: %w", err)
			return
		}
		storeDB = db
	})
	return storeDB, storeErr
}

func initStoreSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS video_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		event        TEXT NOT NULL,
		instance_id  TEXT,
		provider     TEXT NOT NULL,
		video_id     TEXT NOT NULL,
		title        TEXT,
		page_url     TEXT,
		percent      INTEGER NOT NULL DEFAULT 0,
		position_sec INTEGER NOT NULL DEFAULT 0,
		duration_sec INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_events_video ON video_events(video_id, event)`)
	return err
}

// SQLiteStore is the default local event store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite returns the process-wide SQLite store.
func OpenSQLite() (*SQLiteStore, error) {
	db, err := openStoreDB()
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, ev Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO video_events (event, instance_id, provider, video_id, title, page_url, percent, position_sec, duration_sec, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(ev.Name), ev.InstanceID, ev.Provider, ev.VideoID, ev.Title, ev.PageURL,
		ev.Percent, ev.CurrentTime, ev.Duration, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("analytics sqlite: insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Summary(ctx context.Context, videoID string) (Summary, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if videoID != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT event, COUNT(*) FROM video_events WHERE video_id = ? GROUP BY event`, videoID)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT event, COUNT(*) FROM video_events GROUP BY event`)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("analytics sqlite: summary: %w", err)
	}
	defer rows.Close()

	sum := newSummary(videoID)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return Summary{}, fmt.Errorf("analytics sqlite: scan: %w", err)
		}
		sum.add(Name(name), n)
	}
	return sum, rows.Err()
}
