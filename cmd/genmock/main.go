// Command genmock writes synthetic PRSA-format CSV files for the five
// monitoring locations, for local development without the real data set.
// Output is deterministic for a given seed. Each file is read back through
// the real loader so the fixtures are known to load.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

var header = []string{
	"No", "year", "month", "day", "hour",
	"PM2.5", "PM10", "SO2", "NO2", "CO", "O3",
	"TEMP", "PRES", "DEWP", "RAIN", "wd", "WSPM", "station",
}

var windDirections = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// profile shifts each location's baseline so the sites are distinguishable.
type profile struct {
	pm25Base float64
	tempBase float64
}

var profiles = map[domain.Location]profile{
	domain.Aotizhongxin: {pm25Base: 82, tempBase: 13.6},
	domain.Changping:    {pm25Base: 71, tempBase: 13.7},
	domain.Dingling:     {pm25Base: 66, tempBase: 13.5},
	domain.Dongsi:       {pm25Base: 86, tempBase: 13.7},
	domain.Guanyuan:     {pm25Base: 83, tempBase: 13.6},
}

type options struct {
	outDir      string
	start, end  time.Time
	seed        uint64
	missingRate float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data", "directory to write the CSV files into")
	start := flag.String("start", domain.DatasetStart.Format(domain.DateLayout), "first day (YYYY-MM-DD)")
	end := flag.String("end", domain.DatasetEnd.Format(domain.DateLayout), "last day (YYYY-MM-DD)")
	seed := flag.Uint64("seed", 42, "random seed")
	missing := flag.Float64("missing-rate", 0.02, "fraction of rows with PM2.5 left as NA")
	flag.Parse()

	opts := options{outDir: *outDir, seed: *seed, missingRate: *missing}
	var err error
	if opts.start, err = domain.ParseDate(*start); err != nil {
		return fmt.Errorf("-start: %w", err)
	}
	if opts.end, err = domain.ParseDate(*end); err != nil {
		return fmt.Errorf("-end: %w", err)
	}
	if opts.end.Before(opts.start) {
		return fmt.Errorf("-end %s is before -start %s", *end, *start)
	}
	if opts.missingRate < 0 || opts.missingRate >= 1 {
		return fmt.Errorf("-missing-rate must be in [0, 1)")
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.outDir, err)
	}

	for i, loc := range domain.Locations() {
		path := filepath.Join(opts.outDir, loc.FileName())
		// Offset the seed per location so files differ but stay reproducible.
		rng := rand.New(rand.NewPCG(opts.seed, uint64(i)))
		n, err := writeLocation(path, loc, opts, rng)
		if err != nil {
			return fmt.Errorf("writing %s: %w", loc, err)
		}

		kept, err := readBack(path, loc)
		if err != nil {
			return fmt.Errorf("reading back %s: %w", path, err)
		}
		log.Printf("%s: %d rows written, %d loadable", loc, n, kept)
	}
	log.Printf("wrote %d files to %s", len(domain.Locations()), opts.outDir)
	return nil
}

func writeLocation(path string, loc domain.Location, opts options, rng *rand.Rand) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, err
	}

	p := profiles[loc]
	n := 0
	last := opts.end.Add(23 * time.Hour)
	for ts := opts.start; !ts.After(last); ts = ts.Add(time.Hour) {
		n++
		if err := w.Write(record(n, ts, loc, p, opts.missingRate, rng)); err != nil {
			return n, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return n, err
	}
	return n, f.Close()
}

// record builds one hourly row. PM2.5 peaks in winter and on weekends and
// falls with wind speed; pressure moves against temperature.
func record(no int, ts time.Time, loc domain.Location, p profile, missingRate float64, rng *rand.Rand) []string {
	dayOfYear := float64(ts.YearDay())
	season := math.Cos(2 * math.Pi * (dayOfYear - 15) / 365)
	diurnal := math.Sin(2 * math.Pi * float64(ts.Hour()-9) / 24)

	temp := p.tempBase - 15*season + 4*diurnal + rng.NormFloat64()*2
	pres := 1010 + 12*season - 0.3*(temp-p.tempBase) + rng.NormFloat64()*3
	wspm := math.Max(0, 1.7+rng.ExpFloat64()*0.8-0.5*season)

	pm25 := p.pm25Base * (1 + 0.5*season) * math.Exp(-0.25*wspm) * (1 + rng.NormFloat64()*0.35)
	if domain.IsWeekend(domain.WeekdayIndex(ts)) {
		pm25 *= 1.08
	}
	pm25 = math.Max(3, math.Round(pm25))

	pm25Field := strconv.FormatFloat(pm25, 'f', -1, 64)
	if rng.Float64() < missingRate {
		pm25Field = "NA"
	}

	return []string{
		strconv.Itoa(no),
		strconv.Itoa(ts.Year()),
		strconv.Itoa(int(ts.Month())),
		strconv.Itoa(ts.Day()),
		strconv.Itoa(ts.Hour()),
		pm25Field,
		strconv.FormatFloat(math.Round(pm25*1.3), 'f', -1, 64),
		strconv.FormatFloat(math.Round(math.Max(2, 15+10*season+rng.NormFloat64()*5)), 'f', -1, 64),
		strconv.FormatFloat(math.Round(math.Max(2, 50+15*season+rng.NormFloat64()*10)), 'f', -1, 64),
		strconv.FormatFloat(math.Round(math.Max(100, 1200+600*season+rng.NormFloat64()*300)), 'f', -1, 64),
		strconv.FormatFloat(math.Round(math.Max(2, 55-35*season+20*diurnal+rng.NormFloat64()*10)), 'f', -1, 64),
		strconv.FormatFloat(round1(temp), 'f', -1, 64),
		strconv.FormatFloat(round1(pres), 'f', -1, 64),
		strconv.FormatFloat(round1(temp-8-rng.Float64()*6), 'f', -1, 64),
		"0",
		windDirections[rng.IntN(len(windDirections))],
		strconv.FormatFloat(round1(wspm), 'f', -1, 64),
		string(loc),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func readBack(path string, loc domain.Location) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	t, err := csvfile.ReadTable(loc, f, domain.Reject)
	if err != nil {
		return 0, err
	}
	return t.Len(), nil
}
