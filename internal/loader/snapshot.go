package loader

import (
	"time"

	"fleet-dashboard-backend/internal/fleet"
)

// Snapshot is one fully enriched load of the reference dataset. It is
// immutable once published; readers share it by pointer.
type Snapshot struct {
	Catalog  *fleet.Catalog
	Results  []fleet.Result
	Views    []fleet.EquipmentWithDetails
	LoadedAt time.Time
}

func newSnapshot(c *fleet.Catalog, results []fleet.Result, loadedAt time.Time) *Snapshot {
	views := make([]fleet.EquipmentWithDetails, 0, len(results))
	for _, r := range results {
		if r.Details != nil {
			views = append(views, *r.Details)
		}
	}
	return &Snapshot{Catalog: c, Results: results, Views: views, LoadedAt: loadedAt}
}

// Find returns the enrichment result of the equipment with the given id.
func (s *Snapshot) Find(id string) (fleet.Result, bool) {
	for _, r := range s.Results {
		if r.Equipment.ID == id {
			return r, true
		}
	}
	return fleet.Result{}, false
}

// Failures returns the results whose enrichment failed, in input order.
func (s *Snapshot) Failures() []fleet.Result {
	var failed []fleet.Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
