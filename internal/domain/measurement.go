package domain

import (
	"sort"
	"time"
)

// Variable names a numeric column of the source files.
type Variable string

const (
	PM25 Variable = "PM2.5"
	Temp Variable = "TEMP"
	Pres Variable = "PRES"
	WSPM Variable = "WSPM"
)

// CorrelationVariables is the fixed variable order of the correlation matrix.
var CorrelationVariables = []Variable{PM25, Temp, Pres, WSPM}

// Covariates are the optional columns plotted against PM2.5.
var Covariates = []Variable{Temp, Pres, WSPM}

// Label is the human-readable axis label for the variable.
func (v Variable) Label() string {
	switch v {
	case PM25:
		return "PM2.5 (µg/m³)"
	case Temp:
		return "Temperature (°C)"
	case Pres:
		return "Pressure (hPa)"
	case WSPM:
		return "Wind speed (m/s)"
	default:
		return string(v)
	}
}

// Measurement is one hourly observation at a location.
type Measurement struct {
	Time time.Time `json:"time" yaml:"time"`
	PM25 float64   `json:"pm25" yaml:"pm25"`
	Temp NullFloat `json:"temp" yaml:"temp"`
	Pres NullFloat `json:"pres" yaml:"pres"`
	WSPM NullFloat `json:"wspm" yaml:"wspm"`
}

// Value returns the measurement's value for v, or null for an unknown variable.
func (m Measurement) Value(v Variable) NullFloat {
	switch v {
	case PM25:
		return NullFloat(m.PM25)
	case Temp:
		return m.Temp
	case Pres:
		return m.Pres
	case WSPM:
		return m.WSPM
	default:
		return Null()
	}
}

// SortByTime orders measurements by timestamp, keeping file order among equal times.
func SortByTime(rows []Measurement) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Time.Before(rows[j].Time)
	})
}
