package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

const goodCSV = `No,year,month,day,hour,PM2.5,TEMP,PRES,WSPM,station
1,2013,3,1,0,4,-0.7,1023,4.4,X
2,2013,3,1,1,NA,-1.1,1023.2,4.7,X
3,2013,3,1,2,7,-1.1,1023.5,5.6,X
`

func writeFiles(t *testing.T, override map[domain.Location]string) string {
	t.Helper()
	dir := t.TempDir()
	for _, loc := range domain.Locations() {
		body := goodCSV
		if s, ok := override[loc]; ok {
			body = s
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, loc.FileName()), []byte(body), 0o600))
	}
	return dir
}

func TestRun_Passes(t *testing.T) {
	var out bytes.Buffer
	code := run(writeFiles(t, nil), true, &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Dongsi: 3 rows, 1 missing PM2.5")
}

func TestRun_MissingColumn(t *testing.T) {
	noPM := strings.ReplaceAll(goodCSV, "PM2.5", "PM10")
	var out bytes.Buffer
	code := run(writeFiles(t, map[domain.Location]string{domain.Dingling: noPM}), false, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `Dingling: missing required column "PM2.5"`)
}

func TestRun_Duplicates(t *testing.T) {
	dup := goodCSV + "4,2013,3,1,2,9,-1,1024,5,X\n"
	files := map[domain.Location]string{domain.Guanyuan: dup}

	var lenient bytes.Buffer
	assert.Equal(t, 0, run(writeFiles(t, files), false, &lenient), lenient.String())
	assert.Contains(t, lenient.String(), "Guanyuan: 1 duplicate timestamps")

	var strict bytes.Buffer
	assert.Equal(t, 1, run(writeFiles(t, files), true, &strict))
	assert.Contains(t, strict.String(), "duplicate timestamp 2013-03-01 02:00:00 (first at line 4)")
}

func TestRun_InvalidTimestampAndCoverage(t *testing.T) {
	bad := goodCSV + "4,2013,2,30,0,5,1,1000,1,X\n5,2018,1,1,0,5,1,1000,1,X\n"
	var out bytes.Buffer
	code := run(writeFiles(t, map[domain.Location]string{domain.Changping: bad}), false, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Changping line 5: invalid timestamp 2013-02-30 00:00")
	assert.Contains(t, out.String(), "falls outside 2013-03-01..2017-02-28")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(t.TempDir(), false, &out))
	assert.Contains(t, out.String(), "FATAL")
}
