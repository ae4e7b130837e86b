package models_test

import (
	"math"
	"testing"

	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/stretchr/testify/assert"
)

func validGeodetic() models.GeodeticLandmark {
	return models.GeodeticLandmark{
		Identifier:              "A",
		LatitudeDeg:             51.5074,
		LongitudeDeg:            -0.1278,
		AltitudeM:               11.0,
		LatitudeUncertaintyDeg:  1e-6,
		LongitudeUncertaintyDeg: 1e-6,
		AltitudeUncertaintyM:    10.0,
	}
}

// TestGeodeticLandmark_Validate exercises the record invariants.
func TestGeodeticLandmark_Validate(t *testing.T) {
	assert.NoError(t, validGeodetic().Validate())

	noID := validGeodetic()
	noID.Identifier = ""
	assert.Error(t, noID.Validate())

	nanCoord := validGeodetic()
	nanCoord.LatitudeDeg = math.NaN()
	assert.Error(t, nanCoord.Validate())

	infCoord := validGeodetic()
	infCoord.AltitudeM = math.Inf(1)
	assert.Error(t, infCoord.Validate())

	negUncertainty := validGeodetic()
	negUncertainty.AltitudeUncertaintyM = -1.0
	assert.Error(t, negUncertainty.Validate())
}

// TestCartesianLandmark_Validate exercises the record invariants.
func TestCartesianLandmark_Validate(t *testing.T) {
	valid := models.CartesianLandmark{
		Identifier:   "A",
		XM:           1.0,
		YM:           2.0,
		ZM:           3.0,
		UncertaintyM: 0.1,
	}
	assert.NoError(t, valid.Validate())

	noID := valid
	noID.Identifier = ""
	assert.Error(t, noID.Validate())

	nanCoord := valid
	nanCoord.YM = math.NaN()
	assert.Error(t, nanCoord.Validate())

	negUncertainty := valid
	negUncertainty.UncertaintyM = -0.1
	assert.Error(t, negUncertainty.Validate())
}
