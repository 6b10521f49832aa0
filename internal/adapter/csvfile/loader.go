// Package csvfile loads PRSA hourly data files into a domain.Dataset.
package csvfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

var (
	// ErrMissingColumn is returned when a required column is absent from a file.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoRows is returned for a file holding a header but no data rows.
	ErrNoRows = errors.New("no data rows")
)

var requiredColumns = []string{"year", "month", "day", "hour", string(domain.PM25)}

// Loader reads every location's file from a data directory.
type Loader struct {
	dir    string
	policy domain.DuplicatePolicy
	logger *slog.Logger
}

// NewLoader creates a Loader for dir applying policy to duplicate timestamps.
func NewLoader(dir string, policy domain.DuplicatePolicy, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, policy: policy, logger: logger}
}

// Load reads all five location files. Any failure aborts the whole load;
// no partial dataset is returned.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	tables := make([]*domain.Table, 0, len(domain.Locations()))
	for _, loc := range domain.Locations() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		t, err := l.loadFile(loc)
		if err != nil {
			return nil, err
		}
		l.logger.Info("location loaded",
			"location", loc,
			"rows", t.Len(),
			"duration", time.Since(start),
		)
		tables = append(tables, t)
	}
	return domain.NewDataset(tables...)
}

func (l *Loader) loadFile(loc domain.Location) (*domain.Table, error) {
	path := filepath.Join(l.dir, loc.FileName())
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	t, err := ReadTable(loc, f, l.policy)
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", loc, path, err)
	}
	return t, nil
}

// ReadTable parses one PRSA CSV stream into a table for loc. Rows without a
// PM2.5 value are dropped; rows are ordered by time before policy is applied.
// A header-only file is malformed and fails with ErrNoRows.
func ReadTable(loc domain.Location, r io.Reader, policy domain.DuplicatePolicy) (*domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !hasDataRow(data) {
		return nil, ErrNoRows
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues([]string{"NA", "NaN", ""}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	// Header names in the files may carry whitespace.
	columns := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		columns[strings.TrimSpace(name)] = name
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	parts := make(map[string][]int, 4)
	for _, name := range requiredColumns[:4] {
		vals, err := df.Col(columns[name]).Int()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		parts[name] = vals
	}

	pm25 := df.Col(columns[string(domain.PM25)]).Float()
	covariates := map[domain.Variable][]float64{}
	var present []domain.Variable
	for _, v := range domain.Covariates {
		raw, ok := columns[string(v)]
		if !ok {
			continue
		}
		covariates[v] = df.Col(raw).Float()
		present = append(present, v)
	}

	rows := make([]domain.Measurement, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		ts, err := timestamp(parts["year"][i], parts["month"][i], parts["day"][i], parts["hour"][i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if math.IsNaN(pm25[i]) {
			continue
		}
		rows = append(rows, domain.Measurement{
			Time: ts,
			PM25: pm25[i],
			Temp: covariate(covariates, domain.Temp, i),
			Pres: covariate(covariates, domain.Pres, i),
			WSPM: covariate(covariates, domain.WSPM, i),
		})
	}

	domain.SortByTime(rows)
	rows, err = domain.ResolveDuplicates(rows, policy)
	if err != nil {
		return nil, err
	}
	return domain.NewTable(loc, rows, present), nil
}

// hasDataRow reports whether any non-blank line follows the header.
func hasDataRow(data []byte) bool {
	_, rest, ok := bytes.Cut(data, []byte("\n"))
	return ok && len(bytes.TrimSpace(rest)) > 0
}

func covariate(cols map[domain.Variable][]float64, v domain.Variable, i int) domain.NullFloat {
	vals, ok := cols[v]
	if !ok {
		return domain.Null()
	}
	return domain.NullFloat(vals[i])
}

// timestamp builds the hour's UTC time, rejecting components that would
// normalize to a different date.
func timestamp(year, month, day, hour int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid timestamp %04d-%02d-%02d %02d:00", year, month, day, hour)
	}
	t := time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid timestamp %04d-%02d-%02d %02d:00", year, month, day, hour)
	}
	return t, nil
}
