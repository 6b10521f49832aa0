package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownLocation is returned when a name does not match a monitoring location.
var ErrUnknownLocation = errors.New("unknown location")

// Location identifies one of the fixed monitoring sites.
type Location string

const (
	Aotizhongxin Location = "Aotizhongxin"
	Changping    Location = "Changping"
	Dingling     Location = "Dingling"
	Dongsi       Location = "Dongsi"
	Guanyuan     Location = "Guanyuan"
)

var locations = []Location{Aotizhongxin, Changping, Dingling, Dongsi, Guanyuan}

// Locations returns every monitoring location in display order.
func Locations() []Location {
	return slices.Clone(locations)
}

// ParseLocation matches name exactly (case-sensitive) against the known locations.
func ParseLocation(name string) (Location, error) {
	for _, loc := range locations {
		if string(loc) == name {
			return loc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocation, name)
}

// FileName is the data file holding this location's measurements.
func (l Location) FileName() string {
	return fmt.Sprintf("PRSA_Data_%s_20130301-20170228.csv", string(l))
}

func (l Location) String() string { return string(l) }
