package domain

import (
	"time"
)

func hour(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// meas builds a measurement with all covariates present.
func meas(t time.Time, pm25, temp, pres, wspm float64) Measurement {
	return Measurement{Time: t, PM25: pm25, Temp: NullFloat(temp), Pres: NullFloat(pres), WSPM: NullFloat(wspm)}
}

func viewOf(rows ...Measurement) View {
	t := NewTable(Dongsi, rows, Covariates)
	return Filter(t, DatasetBounds())
}
