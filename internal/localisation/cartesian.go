package localisation

import (
	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/internal/store"
	"github.com/rs/zerolog"
)

// CartesianLocaliser stores and localises against landmark observations in a
// local Cartesian frame. It mirrors GlobalLocaliser apart from the record
// variant.
type CartesianLocaliser struct {
	store  *store.LandmarkStore[models.CartesianLandmark]
	logger zerolog.Logger
}

// NewCartesianLocaliser creates a localiser that owns the given Cartesian store.
func NewCartesianLocaliser(store *store.LandmarkStore[models.CartesianLandmark], logger zerolog.Logger) *CartesianLocaliser {
	return &CartesianLocaliser{
		store:  store,
		logger: logger,
	}
}

// AddData records one observation of a landmark with the default uncertainty.
// It reports whether the identifier was already known.
func (l *CartesianLocaliser) AddData(identifier string, xM, yM, zM float64) bool {
	return l.AddDataWithUncertainty(identifier, xM, yM, zM, DefaultCartesianUncertaintyM)
}

// AddDataWithUncertainty records one observation with an explicit uncertainty.
func (l *CartesianLocaliser) AddDataWithUncertainty(identifier string, xM, yM, zM, uncertaintyM float64) bool {
	return l.store.Put(models.CartesianLandmark{
		Identifier:   identifier,
		XM:           xM,
		YM:           yM,
		ZM:           zM,
		UncertaintyM: uncertaintyM,
	})
}

// GetData returns every stored observation for the identifier.
func (l *CartesianLocaliser) GetData(identifier string) []models.CartesianLandmark {
	return l.store.Get(identifier)
}

// Size returns the number of distinct landmarks known to the localiser.
func (l *CartesianLocaliser) Size() int {
	return l.store.Size()
}

// Localise estimates the landmark's position as the arithmetic mean of all its
// stored observations. The second return value is false when the identifier is
// unknown. The estimate carries the fixed default uncertainty.
func (l *CartesianLocaliser) Localise(identifier string) (models.CartesianLandmark, bool) {
	acc := cartesianAccumulator{}
	for _, observation := range l.store.Get(identifier) {
		acc = acc.add(observation)
	}
	return acc.mean(identifier)
}

// LocaliseMany averages the estimates of the identifiers that resolve,
// returning false when the input is empty or nothing resolved. It also returns
// how many identifiers resolved.
func (l *CartesianLocaliser) LocaliseMany(identifiers []string) (models.CartesianLandmark, int, bool) {
	acc := cartesianAccumulator{}
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
		return models.CartesianLandmark{}, 0, false
	}
	return estimate, acc.count, true
}

// Save serializes the underlying store to path.
func (l *CartesianLocaliser) Save(path string) error {
	return l.store.Save(path)
}

// Load replaces the underlying store with the contents of path and returns the
// number of landmarks loaded.
func (l *CartesianLocaliser) Load(path string) (int, error) {
	return l.store.Load(path)
}

// LoadIfExists loads the underlying store from path when the file is present
// and reports whether it was.
func (l *CartesianLocaliser) LoadIfExists(path string) (int, bool, error) {
	return l.store.LoadIfExists(path)
}

// cartesianAccumulator is the running state of an unweighted mean over
// Cartesian observations.
type cartesianAccumulator struct {
	xM    float64
	yM    float64
	zM    float64
	count int
}

func (a cartesianAccumulator) add(observation models.CartesianLandmark) cartesianAccumulator {
	return cartesianAccumulator{
		xM:    a.xM + observation.XM,
		yM:    a.yM + observation.YM,
		zM:    a.zM + observation.ZM,
		count: a.count + 1,
	}
}

func (a cartesianAccumulator) mean(identifier string) (models.CartesianLandmark, bool) {
	if a.count == 0 {
		return models.CartesianLandmark{}, false
	}
	n := float64(a.count)
	return models.CartesianLandmark{
		Identifier:   identifier,
		XM:           a.xM / n,
		YM:           a.yM / n,
		ZM:           a.zM / n,
		UncertaintyM: DefaultCartesianUncertaintyM,
	}, true
}
