package domain

import (
	"encoding/json"
	"math"
)

// NullFloat is a float64 where NaN marks a missing value. It marshals NaN
// as JSON and YAML null.
type NullFloat float64

// Null returns a missing NullFloat.
func Null() NullFloat {
	return NullFloat(math.NaN())
}

// Valid reports whether the value is present.
func (f NullFloat) Valid() bool {
	return !math.IsNaN(float64(f))
}

// Float64 returns the raw value, NaN when missing.
func (f NullFloat) Float64() float64 {
	return float64(f)
}

func (f NullFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Null()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = NullFloat(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler; a missing value becomes null.
func (f NullFloat) MarshalYAML() (any, error) {
	if !f.Valid() {
		return nil, nil
	}
	return float64(f), nil
}
