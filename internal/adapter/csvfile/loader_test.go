package csvfile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

const sampleCSV = `No, year ,month,day,hour,PM2.5,PM10,TEMP,PRES, WSPM,station
1,2013,3,1,1,8,8,-1.1,1023.2,4.4,"Dongsi"
2,2013,3,1,0,9,9,-0.7,1023,5.7,"Dongsi"
3,2013,3,1,2,NA,7,-1.2,1023.5,5.6,"Dongsi"
4,2013,3,1,3,6,6,NA,1024.5,NA,"Dongsi"
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDataDir(t *testing.T, contents map[domain.Location]string) string {
	t.Helper()
	dir := t.TempDir()
	for _, loc := range domain.Locations() {
		body, ok := contents[loc]
		if !ok {
			body = sampleCSV
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, loc.FileName()), []byte(body), 0o600))
	}
	return dir
}

func TestReadTable(t *testing.T) {
	tbl, err := ReadTable(domain.Dongsi, strings.NewReader(sampleCSV), domain.KeepAll)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.Len(), "row with NA PM2.5 is dropped")
	assert.Equal(t, time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC), tbl.Row(0).Time)
	assert.Equal(t, 9.0, tbl.Row(0).PM25)
	assert.Equal(t, domain.NullFloat(-0.7), tbl.Row(0).Temp)
	assert.Equal(t, time.Date(2013, 3, 1, 1, 0, 0, 0, time.UTC), tbl.Row(1).Time)

	last := tbl.Row(2)
	assert.Equal(t, 6.0, last.PM25)
	assert.False(t, last.Temp.Valid())
	assert.False(t, last.WSPM.Valid())
	assert.Equal(t, domain.NullFloat(1024.5), last.Pres)

	assert.True(t, tbl.HasColumn(domain.WSPM))
}

func TestReadTable_OptionalColumnAbsent(t *testing.T) {
	csv := "year,month,day,hour,PM2.5,TEMP,PRES\n2013,3,1,0,10,1,1000\n2013,3,1,1,20,2,1001\n"
	tbl, err := ReadTable(domain.Changping, strings.NewReader(csv), domain.KeepAll)
	require.NoError(t, err)

	assert.False(t, tbl.HasColumn(domain.WSPM))
	assert.False(t, tbl.Row(0).WSPM.Valid())

	m := domain.Correlate(domain.Filter(tbl, domain.DatasetBounds()))
	assert.Equal(t, []domain.Variable{domain.PM25, domain.Temp, domain.Pres}, m.Variables)
}

func TestReadTable_MissingRequiredColumn(t *testing.T) {
	csv := "year,month,day,PM2.5\n2013,3,1,10\n"
	_, err := ReadTable(domain.Dongsi, strings.NewReader(csv), domain.KeepAll)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "hour")
}

func TestReadTable_InvalidTimestamp(t *testing.T) {
	for name, csv := range map[string]string{
		"non-integer hour":  "year,month,day,hour,PM2.5\n2013,3,1,x,10\n",
		"missing day":       "year,month,day,hour,PM2.5\n2013,3,NA,1,10\n",
		"impossible date":   "year,month,day,hour,PM2.5\n2013,2,30,1,10\n",
		"hour out of range": "year,month,day,hour,PM2.5\n2013,3,1,24,10\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(domain.Dongsi, strings.NewReader(csv), domain.KeepAll)
			assert.Error(t, err)
		})
	}
}

func TestReadTable_DuplicatePolicy(t *testing.T) {
	csv := "year,month,day,hour,PM2.5\n2013,3,1,0,10\n2013,3,1,0,20\n"

	tbl, err := ReadTable(domain.Dongsi, strings.NewReader(csv), domain.KeepAll)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	tbl, err = ReadTable(domain.Dongsi, strings.NewReader(csv), domain.KeepLast)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, 20.0, tbl.Row(0).PM25)

	_, err = ReadTable(domain.Dongsi, strings.NewReader(csv), domain.Reject)
	assert.True(t, errors.Is(err, domain.ErrDuplicateTimestamp))
}

func TestLoader_Load(t *testing.T) {
	dir := writeDataDir(t, nil)

	ds, err := NewLoader(dir, domain.KeepAll, discardLogger()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Locations(), ds.Locations())
	assert.Equal(t, 15, ds.Rows())
}

func TestLoader_MissingFileIsFatal(t *testing.T) {
	dir := writeDataDir(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, domain.Guanyuan.FileName())))

	ds, err := NewLoader(dir, domain.KeepAll, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "Guanyuan")
}

func TestReadTable_HeaderOnlyFile(t *testing.T) {
	for name, csv := range map[string]string{
		"no newline":     "No,year,month,day,hour,PM2.5",
		"trailing blank": "No,year,month,day,hour,PM2.5\n\n",
		"crlf":           "No,year,month,day,hour,PM2.5\r\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(domain.Dongsi, strings.NewReader(csv), domain.KeepAll)
			assert.ErrorIs(t, err, ErrNoRows)
		})
	}
}

func TestLoader_HeaderOnlyFileIsFatal(t *testing.T) {
	dir := writeDataDir(t, map[domain.Location]string{
		domain.Aotizhongxin: "No,year,month,day,hour,PM2.5,TEMP,PRES,WSPM,station\n",
	})

	_, err := NewLoader(dir, domain.KeepAll, discardLogger()).Load(context.Background())
	require.ErrorIs(t, err, ErrNoRows)
	assert.Contains(t, err.Error(), "Aotizhongxin")
}

func TestLoader_MalformedFileIsFatal(t *testing.T) {
	dir := writeDataDir(t, map[domain.Location]string{
		domain.Dingling: "year,month\n2013,3\n",
	})

	_, err := NewLoader(dir, domain.KeepAll, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Dingling")
}

func TestLoader_CancelledContext(t *testing.T) {
	dir := writeDataDir(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(dir, domain.KeepAll, discardLogger()).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
