// Command validate checks the integrity of the five PRSA data files before
// the dashboard loads them. It verifies required columns, parses every row,
// counts missing PM2.5 values, flags duplicate and out-of-order timestamps,
// reports date coverage, and confirms the loader accepts each file.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data -strict
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

var requiredColumns = []string{"year", "month", "day", "hour", string(domain.PM25)}

// phase tracks pass/fail for a validation phase. Notes are informational.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing the PRSA CSV files")
	strict := flag.Bool("strict", false, "treat duplicate timestamps as failures")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir, *strict, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir string, strict bool, out io.Writer) int {
	fmt.Fprintln(out, "=== Air Quality Data Validation ===")
	fmt.Fprintln(out)

	files := make(map[domain.Location]*csvFile, len(domain.Locations()))
	for _, loc := range domain.Locations() {
		f, err := loadCSV(filepath.Join(dataDir, loc.FileName()))
		if err != nil {
			fmt.Fprintf(out, "FATAL: %s: %v\n", loc, err)
			return 1
		}
		files[loc] = f
	}

	parsed := make(map[domain.Location][]parsedRow, len(files))
	phases := []*phase{
		validateColumns(files),
		validateRows(files, parsed),
		validateOrdering(parsed, strict),
		validateCoverage(parsed),
		validateLoader(dataDir, strict),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	total := 0
	for _, f := range files {
		total += len(f.rows)
	}
	fmt.Fprintf(out, "Rows: %d across %d files\n", total, len(files))

	for _, p := range phases {
		if len(p.notes) == 0 && p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Fprintf(out, "  %s\n", n)
		}
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvFile is a raw CSV file with trimmed header names.
type csvFile struct {
	header map[string]int
	rows   [][]string
}

func loadCSV(path string) (*csvFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	header := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		header[strings.TrimSpace(h)] = i
	}
	return &csvFile{header: header, rows: all[1:]}, nil
}

func (f *csvFile) field(row []string, name string) (string, bool) {
	i, ok := f.header[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

// parsedRow is a data row with a valid timestamp.
type parsedRow struct {
	line    int
	ts      time.Time
	hasPM25 bool
}

// ── Phase 1: Columns ──

func validateColumns(files map[domain.Location]*csvFile) *phase {
	p := &phase{name: "Phase 1: Required Columns"}
	for _, loc := range domain.Locations() {
		f := files[loc]
		for _, col := range requiredColumns {
			if _, ok := f.header[col]; !ok {
				p.errorf("%s: missing required column %q", loc, col)
			}
		}
		for _, v := range domain.Covariates {
			if _, ok := f.header[string(v)]; !ok {
				p.notef("%s: optional column %q absent", loc, v)
			}
		}
	}
	return p
}

// ── Phase 2: Row parsing ──

func validateRows(files map[domain.Location]*csvFile, parsed map[domain.Location][]parsedRow) *phase {
	p := &phase{name: "Phase 2: Row Parsing"}
	for _, loc := range domain.Locations() {
		f := files[loc]
		missing := 0
		rows := make([]parsedRow, 0, len(f.rows))
		for i, row := range f.rows {
			line := i + 2
			ts, err := rowTimestamp(f, row)
			if err != nil {
				p.errorf("%s line %d: %v", loc, line, err)
				continue
			}
			pr := parsedRow{line: line, ts: ts}
			if raw, _ := f.field(row, string(domain.PM25)); !isMissing(raw) {
				if _, err := strconv.ParseFloat(raw, 64); err != nil {
					p.errorf("%s line %d: PM2.5 %q is not a number", loc, line, raw)
					continue
				}
				pr.hasPM25 = true
			} else {
				missing++
			}
			for _, v := range domain.Covariates {
				raw, ok := f.field(row, string(v))
				if !ok || isMissing(raw) {
					continue
				}
				if _, err := strconv.ParseFloat(raw, 64); err != nil {
					p.errorf("%s line %d: %s %q is not a number", loc, line, v, raw)
				}
			}
			rows = append(rows, pr)
		}
		parsed[loc] = rows
		p.notef("%s: %d rows, %d missing PM2.5", loc, len(f.rows), missing)
		if missing == len(f.rows) {
			p.errorf("%s: no PM2.5 values at all", loc)
		}
	}
	return p
}

func rowTimestamp(f *csvFile, row []string) (time.Time, error) {
	var parts [4]int
	for i, col := range requiredColumns[:4] {
		raw, ok := f.field(row, col)
		if !ok {
			return time.Time{}, fmt.Errorf("missing %s", col)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s %q is not an integer", col, raw)
		}
		parts[i] = n
	}
	year, month, day, hour := parts[0], parts[1], parts[2], parts[3]
	if month < 1 || month > 12 || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid timestamp %04d-%02d-%02d %02d:00", year, month, day, hour)
	}
	ts := time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	if ts.Day() != day {
		return time.Time{}, fmt.Errorf("invalid timestamp %04d-%02d-%02d %02d:00", year, month, day, hour)
	}
	return ts, nil
}

func isMissing(raw string) bool {
	return raw == "" || raw == "NA" || raw == "NaN"
}

// ── Phase 3: Ordering ──

func validateOrdering(parsed map[domain.Location][]parsedRow, strict bool) *phase {
	p := &phase{name: "Phase 3: Timestamp Ordering"}
	for _, loc := range domain.Locations() {
		rows := parsed[loc]
		seen := make(map[time.Time]int, len(rows))
		outOfOrder, duplicates := 0, 0
		for i, r := range rows {
			if i > 0 && r.ts.Before(rows[i-1].ts) {
				outOfOrder++
			}
			if first, dup := seen[r.ts]; dup {
				duplicates++
				if strict {
					p.errorf("%s line %d: duplicate timestamp %s (first at line %d)",
						loc, r.line, r.ts.Format(time.DateTime), first)
				}
				continue
			}
			seen[r.ts] = r.line
		}
		if outOfOrder > 0 {
			p.notef("%s: %d rows out of order (the loader sorts them)", loc, outOfOrder)
		}
		if duplicates > 0 && !strict {
			p.notef("%s: %d duplicate timestamps", loc, duplicates)
		}
	}
	return p
}

// ── Phase 4: Coverage ──

func validateCoverage(parsed map[domain.Location][]parsedRow) *phase {
	p := &phase{name: "Phase 4: Date Coverage"}
	bounds := domain.DatasetBounds()
	for _, loc := range domain.Locations() {
		var first, last time.Time
		n := 0
		for _, r := range parsed[loc] {
			if !r.hasPM25 {
				continue
			}
			if n == 0 || r.ts.Before(first) {
				first = r.ts
			}
			if n == 0 || r.ts.After(last) {
				last = r.ts
			}
			n++
		}
		if n == 0 {
			continue
		}
		span := domain.NewDateRange(first, last)
		p.notef("%s: %s", loc, span)
		if !bounds.Contains(first) || !bounds.Contains(last) {
			p.errorf("%s: data %s falls outside %s", loc, span, bounds)
		}
	}
	return p
}

// ── Phase 5: Loader ──

func validateLoader(dataDir string, strict bool) *phase {
	p := &phase{name: "Phase 5: Loader Acceptance"}
	policy := domain.KeepAll
	if strict {
		policy = domain.Reject
	}
	for _, loc := range domain.Locations() {
		f, err := os.Open(filepath.Join(dataDir, loc.FileName()))
		if err != nil {
			p.errorf("%s: %v", loc, err)
			continue
		}
		t, err := csvfile.ReadTable(loc, f, policy)
		_ = f.Close()
		switch {
		case errors.Is(err, domain.ErrDuplicateTimestamp):
			p.errorf("%s: %v", loc, err)
		case err != nil:
			p.errorf("%s: loader rejected file: %v", loc, err)
		case t.Len() == 0:
			p.errorf("%s: loader kept no rows", loc)
		}
	}
	return p
}
