package tilt

import "math"

// Sample is one orientation reading in degrees. Any field may be absent.
type Sample struct {
	Alpha *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"`
}

// Tilt is a normalized sample. FrontToBack comes from beta and
// LeftToRight from gamma, both still in degrees.
type Tilt struct {
	FrontToBack float64
	LeftToRight float64
}

// Degrees returns a pointer to v for building samples.
func Degrees(v float64) *float64 {
	return &v
}

func orZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

// Normalize maps a raw sample onto tilt scalars. Missing or NaN fields read as 0.
func Normalize(s Sample) Tilt {
	return Tilt{
		FrontToBack: orZero(s.Beta),
		LeftToRight: orZero(s.Gamma),
	}
}
