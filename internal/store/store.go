// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/datewheel/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// Store wraps SQLite access for pick history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS picks (
			id INTEGER PRIMARY KEY,
			picked_at TEXT NOT NULL,
			date TEXT NOT NULL,
			locale TEXT NOT NULL,
			min_date TEXT NOT NULL,
			max_date TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_picked_at ON picks(picked_at);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_date ON picks(date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPick stores a confirmed pick.
func (s *Store) InsertPick(ctx context.Context, rec model.PickRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO picks (picked_at, date, locale, min_date, max_date)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.PickedAt.Format(time.RFC3339Nano),
		rec.Date.Format(dateLayout),
		rec.Locale,
		rec.MinDate.Format(dateLayout),
		rec.MaxDate.Format(dateLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPicks returns picks filtered by history config, oldest first.
func (s *Store) ListPicks(ctx context.Context, cfg model.HistoryConfig) ([]model.PickRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "picked_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, picked_at, date, locale, min_date, max_date
		FROM picks
		WHERE %s
		ORDER BY picked_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var picks []model.PickRecord
	for rows.Next() {
		rec, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return picks, nil
}

// CountByMonth aggregates picks per picked calendar month, oldest first.
func (s *Store) CountByMonth(ctx context.Context, cfg model.HistoryConfig) ([]model.MonthCount, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "picked_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT substr(date, 1, 7) AS ym, COUNT(*) AS n
		FROM picks
		WHERE %s
		GROUP BY ym
		ORDER BY ym ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var counts []model.MonthCount
	for rows.Next() {
		var ym string
		var mc model.MonthCount
		if err := rows.Scan(&ym, &mc.Count); err != nil {
			return nil, err
		}
		parsed, err := time.Parse("2006-01", ym)
		if err != nil {
			return nil, err
		}
		mc.Year = parsed.Year()
		mc.Month = int(parsed.Month())
		counts = append(counts, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func scanPick(rows *sql.Rows) (model.PickRecord, error) {
	var rec model.PickRecord
	var pickedAt, date, minDate, maxDate string
	if err := rows.Scan(&rec.ID, &pickedAt, &date, &rec.Locale, &minDate, &maxDate); err != nil {
		return model.PickRecord{}, err
	}
	var err error
	if rec.PickedAt, err = time.Parse(time.RFC3339Nano, pickedAt); err != nil {
		return model.PickRecord{}, err
	}
	if rec.Date, err = time.Parse(dateLayout, date); err != nil {
		return model.PickRecord{}, err
	}
	if rec.MinDate, err = time.Parse(dateLayout, minDate); err != nil {
		return model.PickRecord{}, err
	}
	if rec.MaxDate, err = time.Parse(dateLayout, maxDate); err != nil {
		return model.PickRecord{}, err
	}
	return rec, nil
}
