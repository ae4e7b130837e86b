package localisation

import (
	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/internal/store"
	"github.com/rs/zerolog"
)

// GlobalLocaliser stores and localises against geodetic landmark observations.
type GlobalLocaliser struct {
	store  *store.LandmarkStore[models.GeodeticLandmark]
	logger zerolog.Logger
}

// NewGlobalLocaliser creates a localiser that owns the given geodetic store.
func NewGlobalLocaliser(store *store.LandmarkStore[models.GeodeticLandmark], logger zerolog.Logger) *GlobalLocaliser {
	return &GlobalLocaliser{
		store:  store,
		logger: logger,
	}
}

// AddData records one observation of a landmark with the default uncertainties.
// It reports whether the identifier was already known.
func (l *GlobalLocaliser) AddData(identifier string, latitudeDeg, longitudeDeg, altitudeM float64) bool {
	return l.AddDataWithUncertainty(identifier, latitudeDeg, longitudeDeg, altitudeM,
		DefaultLatitudeUncertaintyDeg, DefaultLongitudeUncertaintyDeg, DefaultAltitudeUncertaintyM)
}

// AddDataWithUncertainty records one observation with explicit per-axis
// uncertainties.
func (l *GlobalLocaliser) AddDataWithUncertainty(identifier string, latitudeDeg, longitudeDeg, altitudeM,
	latitudeUncertaintyDeg, longitudeUncertaintyDeg, altitudeUncertaintyM float64) bool {
	return l.store.Put(models.GeodeticLandmark{
		Identifier:              identifier,
		LatitudeDeg:             latitudeDeg,
		LongitudeDeg:            longitudeDeg,
		AltitudeM:               altitudeM,
		LatitudeUncertaintyDeg:  latitudeUncertaintyDeg,
		LongitudeUncertaintyDeg: longitudeUncertaintyDeg,
		AltitudeUncertaintyM:    altitudeUncertaintyM,
	})
}

// GetData returns every stored observation for the identifier.
func (l *GlobalLocaliser) GetData(identifier string) []models.GeodeticLandmark {
	return l.store.Get(identifier)
}

// Size returns the number of distinct landmarks known to the localiser.
func (l *GlobalLocaliser) Size() int {
	return l.store.Size()
}

// Localise estimates the landmark's position as the arithmetic mean of all its
// stored observations. The second return value is false when the identifier is
// unknown. The estimate carries the fixed default uncertainties; stored
// uncertainties are not propagated.
func (l *GlobalLocaliser) Localise(identifier string) (models.GeodeticLandmark, bool) {
	acc := geodeticAccumulator{}
	for _, observation := range l.store.Get(identifier) {
		acc = acc.add(observation)
	}
	return acc.mean(identifier)
}

// LocaliseMany estimates the device's position from several landmarks at once:
// each identifier is localised individually and the resolved estimates are
// averaged unweighted. The divisor is the number of identifiers that actually
// resolved, and the second return value is false when the input is empty or
// nothing resolved. It also returns how many identifiers resolved.
func (l *GlobalLocaliser) LocaliseMany(identifiers []string) (models.GeodeticLandmark, int, bool) {
	acc := geodeticAccumulator{}
	for _, identifier := range identifiers {
		estimate, ok := l.Localise(identifier)
		if !ok {
			continue
		}
		acc = acc.add(estimate)
	}

	estimate, ok := acc.mean("")
	if !ok {
		l.logger.Debug().
			Int("requested", len(identifiers)).
			Msg("No landmarks resolved, position unknown")
		return models.GeodeticLandmark{}, 0, false
	}
	return estimate, acc.count, true
}

// Save serializes the underlying store to path.
func (l *GlobalLocaliser) Save(path string) error {
	return l.store.Save(path)
}

// Load replaces the underlying store with the contents of path and returns the
// number of landmarks loaded.
func (l *GlobalLocaliser) Load(path string) (int, error) {
	return l.store.Load(path)
}

// LoadIfExists loads the underlying store from path when the file is present
// and reports whether it was.
func (l *GlobalLocaliser) LoadIfExists(path string) (int, bool, error) {
	return l.store.LoadIfExists(path)
}

// geodeticAccumulator is the running state of an unweighted mean over
// geodetic observations. Values are accumulated by a pure reduction so the
// aggregation can be tested in isolation.
type geodeticAccumulator struct {
	latitudeDeg  float64
	longitudeDeg float64
	altitudeM    float64
	count        int
}

func (a geodeticAccumulator) add(observation models.GeodeticLandmark) geodeticAccumulator {
	return geodeticAccumulator{
		latitudeDeg:  a.latitudeDeg + observation.LatitudeDeg,
		longitudeDeg: a.longitudeDeg + observation.LongitudeDeg,
		altitudeM:    a.altitudeM + observation.AltitudeM,
		count:        a.count + 1,
	}
}

// mean finalizes the accumulator into an estimate for identifier. It returns
// false for an empty accumulator rather than dividing by zero.
func (a geodeticAccumulator) mean(identifier string) (models.GeodeticLandmark, bool) {
	if a.count == 0 {
		return models.GeodeticLandmark{}, false
	}
	n := float64(a.count)
	return models.GeodeticLandmark{
		Identifier:              identifier,
		LatitudeDeg:             a.latitudeDeg / n,
		LongitudeDeg:            a.longitudeDeg / n,
		AltitudeM:               a.altitudeM / n,
		LatitudeUncertaintyDeg:  DefaultLatitudeUncertaintyDeg,
		LongitudeUncertaintyDeg: DefaultLongitudeUncertaintyDeg,
		AltitudeUncertaintyM:    DefaultAltitudeUncertaintyM,
	}, true
}
