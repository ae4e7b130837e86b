package models

import (
	"errors"
	"fmt"
	"math"
)

// Landmark is implemented by every landmark record variant stored by the agent.
type Landmark interface {
	// ID returns the stable identifier shared by all observations of the same landmark.
	ID() string
	// Validate reports whether the record satisfies the store invariants.
	Validate() error
}

// GeodeticLandmark is a single observation of a landmark's position in the
// geodetic frame (WGS84 degrees plus altitude in metres).
type GeodeticLandmark struct {
	Identifier              string  `json:"identifier"`
	LatitudeDeg             float64 `json:"latitude_deg"`
	LongitudeDeg            float64 `json:"longitude_deg"`
	AltitudeM               float64 `json:"altitude_m"`
	LatitudeUncertaintyDeg  float64 `json:"latitude_uncertainty_deg"`
	LongitudeUncertaintyDeg float64 `json:"longitude_uncertainty_deg"`
	AltitudeUncertaintyM    float64 `json:"altitude_uncertainty_m"`
}

// ID returns the landmark identifier.
func (g GeodeticLandmark) ID() string {
	return g.Identifier
}

// Validate checks the store invariants: non-empty identifier, finite
// coordinates and non-negative uncertainties.
func (g GeodeticLandmark) Validate() error {
	if g.Identifier == "" {
		return errors.New("landmark identifier is empty")
	}
	for name, v := range map[string]float64{
		"latitude_deg":  g.LatitudeDeg,
		"longitude_deg": g.LongitudeDeg,
		"altitude_m":    g.AltitudeM,
	} {
		if !isFinite(v) {
			return fmt.Errorf("landmark %s: field %s is not finite", g.Identifier, name)
		}
	}
	for name, v := range map[string]float64{
		"latitude_uncertainty_deg":  g.LatitudeUncertaintyDeg,
		"longitude_uncertainty_deg": g.LongitudeUncertaintyDeg,
		"altitude_uncertainty_m":    g.AltitudeUncertaintyM,
	} {
		if !isFinite(v) || v < 0 {
			return fmt.Errorf("landmark %s: field %s must be a non-negative finite value", g.Identifier, name)
		}
	}
	return nil
}

// CartesianLandmark is a single observation of a landmark's position in a
// local Cartesian frame, in metres.
type CartesianLandmark struct {
	Identifier   string  `json:"identifier"`
	XM           float64 `json:"x_m"`
	YM           float64 `json:"y_m"`
	ZM           float64 `json:"z_m"`
	UncertaintyM float64 `json:"uncertainty_m"`
}

// ID returns the landmark identifier.
func (c CartesianLandmark) ID() string {
	return c.Identifier
}

// Validate checks the store invariants: non-empty identifier, finite
// coordinates and a non-negative uncertainty.
func (c CartesianLandmark) Validate() error {
	if c.Identifier == "" {
		return errors.New("landmark identifier is empty")
	}
	for name, v := range map[string]float64{
		"x_m": c.XM,
		"y_m": c.YM,
		"z_m": c.ZM,
	} {
		if !isFinite(v) {
			return fmt.Errorf("landmark %s: field %s is not finite", c.Identifier, name)
		}
	}
	if !isFinite(c.UncertaintyM) || c.UncertaintyM < 0 {
		return fmt.Errorf("landmark %s: field uncertainty_m must be a non-negative finite value", c.Identifier)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
