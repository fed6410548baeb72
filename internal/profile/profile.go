// Package profile defines the selectable heating profiles and persists the
// selection across power cycles.
package profile

import "time"

// Profile is a named temperature-over-time target curve. The numeric
// values are the persisted ids and must not be reordered.
type Profile uint8

const (
	LeadFree Profile = iota
	Leaded
	Bake
)

// Params are the stage constants for a reflow profile. Bake has none: it
// holds a single setpoint indefinitely.
type Params struct {
	SoakMax         float64
	ReflowMax       float64
	SoakMicroPeriod time.Duration
}

var params = [...]Params{
	LeadFree: {SoakMax: 200, ReflowMax: 250, SoakMicroPeriod: 9 * time.Second},
	Leaded:   {SoakMax: 180, ReflowMax: 224, SoakMicroPeriod: 10 * time.Second},
	Bake:     {},
}

// Valid reports whether p is one of the defined profiles.
func (p Profile) Valid() bool {
	return p <= Bake
}

// Params returns the stage constants for the profile.
func (p Profile) Params() Params {
	if !p.Valid() {
		return Params{}
	}
	return params[p]
}

// Next cycles lead-free -> leaded -> bake -> lead-free.
func (p Profile) Next() Profile {
	switch p {
	case LeadFree:
		return Leaded
	case Leaded:
		return Bake
	default:
		return LeadFree
	}
}

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case LeadFree:
		return "lead-free"
	case Leaded:
		return "leaded"
	case Bake:
		return "bake"
	}
	return "unknown"
}

// Code returns the two-letter display abbreviation.
func (p Profile) Code() string {
	switch p {
	case LeadFree:
		return "LF"
	case Leaded:
		return "PB"
	case Bake:
		return "BK"
	}
	return "??"
}
