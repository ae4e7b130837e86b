package store

import (
	"fmt"

	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/pkg/file"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

// LandmarkStore keeps every recorded observation of each landmark, keyed by
// the landmark identifier. A store is bound to a single record variant at
// construction; mixing variants in one store (or one file) is not possible.
//
// Records are append-only: corrections are made by recording new observations,
// never by editing old ones. The backing concurrent map keeps appends from the
// survey loop safe against the reads the localisation and status loops make
// from their own goroutines.
type LandmarkStore[T models.Landmark] struct {
	records cmap.ConcurrentMap[string, []T]
	fileOps file.FileOperations
	logger  zerolog.Logger
}

// NewLandmarkStore creates an empty store for the record type T.
func NewLandmarkStore[T models.Landmark](fileOps file.FileOperations, logger zerolog.Logger) *LandmarkStore[T] {
	return &LandmarkStore[T]{
		records: cmap.New[[]T](),
		fileOps: fileOps,
		logger:  logger,
	}
}

// Get returns every recorded observation for the identifier, in insertion
// order. Unknown identifiers yield an empty sequence, never an error.
func (s *LandmarkStore[T]) Get(identifier string) []T {
	records, ok := s.records.Get(identifier)
	if !ok {
		return nil
	}
	return records
}

// Put appends the record to the sequence keyed by its identifier, creating the
// sequence if absent. It reports whether the identifier already existed before
// this call.
func (s *LandmarkStore[T]) Put(record T) bool {
	existed := false
	s.records.Upsert(record.ID(), nil, func(exist bool, valueInMap, _ []T) []T {
		existed = exist
		return append(valueInMap, record)
	})
	return existed
}

// Size returns the number of distinct identifiers currently stored.
func (s *LandmarkStore[T]) Size() int {
	return s.records.Count()
}

// Save serializes the entire store to a JSON document at path, creating parent
// directories as needed and overwriting any existing file.
func (s *LandmarkStore[T]) Save(path string) error {
	snapshot := s.records.Items()

	if err := s.fileOps.WriteJsonFile(path, snapshot); err != nil {
		return fmt.Errorf("failed to save landmark store to %s: %w", path, err)
	}

	s.logger.Debug().
		Str("path", path).
		Int("landmarks", len(snapshot)).
		Msg("Landmark store saved")
	return nil
}

// Load replaces the store's entire contents with the document at path and
// returns the number of distinct identifiers loaded. The document must match
// the store's record variant exactly; unknown fields and invalid records are
// rejected. The previous contents are kept when loading fails.
func (s *LandmarkStore[T]) Load(path string) (int, error) {
	var loaded map[string][]T
	if err := s.fileOps.ReadJsonFileStrict(path, &loaded); err != nil {
		return 0, fmt.Errorf("failed to load landmark store from %s: %w", path, err)
	}

	for identifier, records := range loaded {
		for _, record := range records {
			if err := record.Validate(); err != nil {
				return 0, fmt.Errorf("invalid record under identifier %q in %s: %w", identifier, path, err)
			}
		}
	}

	// Swap in the freshly parsed contents only after the whole document
	// validated.
	records := cmap.New[[]T]()
	for identifier, seq := range loaded {
		records.Set(identifier, seq)
	}
	s.records = records

	s.logger.Debug().
		Str("path", path).
		Int("landmarks", len(loaded)).
		Msg("Landmark store loaded")
	return len(loaded), nil
}

// LoadIfExists loads the store from path when the file is present and reports
// whether it was. An absent file is not an error, but a stat failure is: an
// unreadable file must not be mistaken for a first run.
func (s *LandmarkStore[T]) LoadIfExists(path string) (int, bool, error) {
	exists, err := s.fileOps.IsFileExists(path)
	if err != nil {
		return 0, false, fmt.Errorf("failed to stat landmark store at %s: %w", path, err)
	}
	if !exists {
		return 0, false, nil
	}

	loaded, err := s.Load(path)
	if err != nil {
		return 0, false, err
	}
	return loaded, true, nil
}
