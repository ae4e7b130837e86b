// Package localisation estimates a device's position from repeated noisy
// observations of fixed landmarks. Each localiser wraps a landmark store and
// computes an unweighted arithmetic mean of all observations per landmark.
// Stored uncertainties are deliberately ignored by the averaging; estimates
// carry the fixed default uncertainties instead.
package localisation

// Default uncertainties applied to new observations and to every estimate.
const (
	DefaultLatitudeUncertaintyDeg  = 1e-6
	DefaultLongitudeUncertaintyDeg = 1e-6
	DefaultAltitudeUncertaintyM    = 10.0

	DefaultCartesianUncertaintyM = 0.1
)
