// Package sqlite exports a loaded dataset to a SQLite file for ad-hoc SQL.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

//go:embed sql/schema.sql
var schemaSQL string

//go:embed sql/insert-measurement.sql
var insertMeasurementSQL string

//go:embed sql/insert-summary.sql
var insertSummarySQL string

// Result counts the rows written by Export.
type Result struct {
	Measurements int
	Summaries    int
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string) (*sql.DB, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Export replaces the measurements and monthly_summaries tables in db with
// the contents of ds, in a single transaction.
func Export(ctx context.Context, db *sql.DB, ds *domain.Dataset, logger *slog.Logger) (Result, error) {
	var res Result

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return res, fmt.Errorf("create schema: %w", err)
	}

	insertRow, err := tx.PrepareContext(ctx, insertMeasurementSQL)
	if err != nil {
		return res, fmt.Errorf("prepare measurement insert: %w", err)
	}
	defer insertRow.Close()

	insertSummary, err := tx.PrepareContext(ctx, insertSummarySQL)
	if err != nil {
		return res, fmt.Errorf("prepare summary insert: %w", err)
	}
	defer insertSummary.Close()

	for _, loc := range ds.Locations() {
		t, err := ds.Table(loc)
		if err != nil {
			return res, err
		}
		for i := range t.Len() {
			m := t.Row(i)
			weekday := domain.WeekdayIndex(m.Time)
			if _, err := insertRow.ExecContext(ctx,
				string(loc),
				m.Time.UTC().Format(time.RFC3339),
				m.PM25,
				nullable(m.Temp),
				nullable(m.Pres),
				nullable(m.WSPM),
				weekday,
				domain.IsWeekend(weekday),
			); err != nil {
				return res, fmt.Errorf("insert %s row %d: %w", loc, i, err)
			}
			res.Measurements++
		}

		for _, s := range domain.SummarizeMonths(t) {
			if _, err := insertSummary.ExecContext(ctx,
				string(s.Location), s.Month, s.Count,
				nullable(s.Mean), nullable(s.Std), nullable(s.Min),
				nullable(s.Median), nullable(s.Max),
				nullable(s.WeekdayMean), nullable(s.WeekendMean),
			); err != nil {
				return res, fmt.Errorf("insert summary %s: %w", s.Key(), err)
			}
			res.Summaries++
		}
		logger.Debug("location exported", "location", loc, "rows", t.Len())
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit export: %w", err)
	}
	logger.Info("dataset exported", "measurements", res.Measurements, "summaries", res.Summaries)
	return res, nil
}

func nullable(f domain.NullFloat) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f.Float64(), Valid: f.Valid()}
}

func buildDSN(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	params := []string{"_busy_timeout=5000", "_journal_mode=WAL"}
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
