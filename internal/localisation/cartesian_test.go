package localisation_test

import (
	"path/filepath"
	"testing"

	"github.com/hugohadfield/locomapper-agent/internal/localisation"
	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/internal/store"
	"github.com/hugohadfield/locomapper-agent/pkg/file"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartesianLocaliser() *localisation.CartesianLocaliser {
	s := store.NewLandmarkStore[models.CartesianLandmark](file.NewFileService(), zerolog.Nop())
	return localisation.NewCartesianLocaliser(s, zerolog.Nop())
}

// TestCartesianLocaliser_AddData_Defaults tests the fixed default uncertainty.
func TestCartesianLocaliser_AddData_Defaults(t *testing.T) {
	l := newCartesianLocaliser()

	existed := l.AddData("A", 1.0, 2.0, 3.0)
	assert.False(t, existed)

	records := l.GetData("A")
	require.Len(t, records, 1)
	assert.Equal(t, models.CartesianLandmark{
		Identifier:   "A",
		XM:           1.0,
		YM:           2.0,
		ZM:           3.0,
		UncertaintyM: localisation.DefaultCartesianUncertaintyM,
	}, records[0])
}

// TestCartesianLocaliser_Localise_Average tests averaging in the Cartesian frame.
func TestCartesianLocaliser_Localise_Average(t *testing.T) {
	l := newCartesianLocaliser()
	l.AddDataWithUncertainty("A", 0.0, 0.0, 0.0, 5.0)
	l.AddDataWithUncertainty("A", 2.0, 4.0, 6.0, 5.0)

	estimate, ok := l.Localise("A")
	require.True(t, ok)

	assert.Equal(t, "A", estimate.Identifier)
	assert.InDelta(t, 1.0, estimate.XM, 1e-12)
	assert.InDelta(t, 2.0, estimate.YM, 1e-12)
	assert.InDelta(t, 3.0, estimate.ZM, 1e-12)
	// Stored uncertainties are not propagated
	assert.Equal(t, 0.1, estimate.UncertaintyM)
}

// TestCartesianLocaliser_Localise_Unknown tests the absent case.
func TestCartesianLocaliser_Localise_Unknown(t *testing.T) {
	l := newCartesianLocaliser()

	_, ok := l.Localise("B")
	assert.False(t, ok)
}

// TestCartesianLocaliser_LocaliseMany tests multi-landmark aggregation.
func TestCartesianLocaliser_LocaliseMany(t *testing.T) {
	l := newCartesianLocaliser()
	l.AddData("A", 2.0, 2.0, 2.0)
	l.AddData("B", 4.0, 4.0, 4.0)

	estimate, resolved, ok := l.LocaliseMany([]string{"A", "B", "unknown"})
	require.True(t, ok)

	assert.Equal(t, 2, resolved)
	assert.InDelta(t, 3.0, estimate.XM, 1e-12)
	assert.InDelta(t, 3.0, estimate.YM, 1e-12)
	assert.InDelta(t, 3.0, estimate.ZM, 1e-12)

	_, _, ok = l.LocaliseMany(nil)
	assert.False(t, ok)
}

// TestCartesianLocaliser_SaveLoad tests the save/load passthrough.
func TestCartesianLocaliser_SaveLoad(t *testing.T) {
	l := newCartesianLocaliser()
	l.AddData("A", 1.0, 2.0, 3.0)

	path := filepath.Join(t.TempDir(), "landmarks.json")
	require.NoError(t, l.Save(path))

	reloaded := newCartesianLocaliser()
	loaded, err := reloaded.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded)
	assert.Equal(t, l.GetData("A"), reloaded.GetData("A"))
}
