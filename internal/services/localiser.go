package services

import (
	"github.com/hugohadfield/locomapper-agent/internal/models"
)

// GeodeticLocaliser is the part of the localisation engine the agent services
// depend on.
type GeodeticLocaliser interface {
	AddData(identifier string, latitudeDeg, longitudeDeg, altitudeM float64) bool
	LocaliseMany(identifiers []string) (models.GeodeticLandmark, int, bool)
	Size() int
	Save(path string) error
}
