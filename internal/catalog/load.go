// internal/catalog/load.go
//
// Catalog loading.
//
// Initialization behavior (Init):
//   1. If CATALOG_FILE is set, load the catalog from that JSON file.
//   2. Otherwise fall back to the embedded default catalog
//      (default_catalog.json, 7 days).
//
// File format:
//   { "startDate": "YYYY-MM-DD", "days": [ {puzzle set}, ... ] }
//
// Constraints:
//   • At least one day; every tier needs start, end, a non-empty answer,
//     and positive points.
//   • Initialization is run once (sync.Once).
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

//go:embed default_catalog.json
var embeddedCatalog []byte

var (
	initOnce   sync.Once
	current    *Catalog
	initialErr error
)

// Init loads the catalog exactly once, from CATALOG_FILE if set or the
// embedded default otherwise.
func Init() error {
	initOnce.Do(func() {
		raw := embeddedCatalog
		if path := os.Getenv("CATALOG_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("read catalog %s: %w", path, err)
				return
			}
			raw = b
		}
		current, initialErr = parseCatalog(raw)
	})
	return initialErr
}

// Current returns the loaded catalog. Call Init first.
func Current() *Catalog {
	return current
}

// catalogFile is the on-disk / embedded JSON shape.
type catalogFile struct {
	StartDate string      `json:"startDate"`
	Days      []PuzzleSet `json:"days"`
}

// parseCatalog decodes and validates a catalog document.
func parseCatalog(raw []byte) (*Catalog, error) {
	var cf catalogFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	start, err := time.Parse("2006-01-02", cf.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse catalog startDate %q: %w", cf.StartDate, err)
	}
	if len(cf.Days) == 0 {
		return nil, errors.New("catalog: no days")
	}
	for i, set := range cf.Days {
		for _, name := range TierNames {
			t, _ := set.Tier(name)
			if err := validateTier(t); err != nil {
				return nil, fmt.Errorf("catalog: day %d %s: %w", i, name, err)
			}
		}
	}
	return &Catalog{Sets: cf.Days, StartDate: Midnight(start)}, nil
}

func validateTier(t Tier) error {
	if t.Start == "" || t.End == "" {
		return errors.New("missing start/end word")
	}
	if len(t.Answer) == 0 {
		return errors.New("empty answer")
	}
	for _, w := range t.Answer {
		if w == "" {
			return errors.New("blank answer word")
		}
	}
	if t.Points <= 0 {
		return errors.New("points must be positive")
	}
	return nil
}
