package fleet

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fleet-dashboard-backend/internal/parse"
)

// StateDerivation selects how the current state of an equipment is chosen.
type StateDerivation int

const (
	// StateFromModel uses the state of the model's first hourly earning.
	StateFromModel StateDerivation = iota
	// StateFromHistory uses the latest recorded state transition.
	StateFromHistory
)

// Options tunes the Enricher.
type Options struct {
	Derivation   StateDerivation
	FetchTimeout time.Duration // per position fetch; 0 disables
	Concurrency  int           // max in-flight enrichments; <= 0 is unbounded
}

// Enricher turns bare equipment records into EquipmentWithDetails views.
type Enricher struct {
	catalog   *Catalog
	positions PositionSource
	opts      Options
}

// NewEnricher creates an Enricher over the catalog and position source.
func NewEnricher(c *Catalog, positions PositionSource, opts Options) *Enricher {
	return &Enricher{catalog: c, positions: positions, opts: opts}
}

// Result is the outcome of enriching one equipment. Exactly one of Details
// and Err is set.
type Result struct {
	Equipment Equipment
	Details   *EquipmentWithDetails
	Err       error
}

// PrimaryStateID returns the state of the model's first hourly earning.
func PrimaryStateID(m EquipmentModel) (string, error) {
	if len(m.HourlyEarnings) == 0 {
		return "", fmt.Errorf("hourly earnings of model %q: %w", m.ID, ErrEmpty)
	}
	return m.HourlyEarnings[0].EquipmentStateID, nil
}

// LatestRecordedStateID returns the state of the most recent transition.
// Entries whose date does not parse are skipped; if none parse, the first
// entry is used since the history is stored most recent first.
func LatestRecordedStateID(history []StateHistoryEntry) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("state history: %w", ErrEmpty)
	}
	latestID := ""
	var latestAt time.Time
	for _, entry := range history {
		at, err := parse.ParseTimestamp(entry.Date)
		if err != nil {
			continue
		}
		if latestID == "" || at.After(latestAt) {
			latestID, latestAt = entry.EquipmentStateID, at
		}
	}
	if latestID == "" {
		return history[0].EquipmentStateID, nil
	}
	return latestID, nil
}

// Enrich builds the detailed view of one equipment.
func (e *Enricher) Enrich(ctx context.Context, eq Equipment) (EquipmentWithDetails, error) {
	model, err := e.catalog.Model(eq.EquipmentModelID)
	if err != nil {
		return EquipmentWithDetails{}, fmt.Errorf("equipment %q: %w", eq.ID, err)
	}

	history := e.catalog.StateHistory(eq.ID)

	var stateID string
	switch e.opts.Derivation {
	case StateFromHistory:
		stateID, err = LatestRecordedStateID(history)
	default:
		stateID, err = PrimaryStateID(model)
	}
	if err != nil {
		return EquipmentWithDetails{}, fmt.Errorf("equipment %q: %w", eq.ID, err)
	}

	samples, err := e.fetchPositions(ctx, eq.ID)
	if err != nil {
		return EquipmentWithDetails{}, fmt.Errorf("equipment %q: %w", eq.ID, err)
	}
	position, err := LatestPosition(samples)
	if err != nil {
		return EquipmentWithDetails{}, fmt.Errorf("equipment %q: %w", eq.ID, err)
	}

	state, err := e.catalog.State(stateID)
	if err != nil {
		return EquipmentWithDetails{}, fmt.Errorf("equipment %q: %w", eq.ID, err)
	}

	return EquipmentWithDetails{
		Equipment:       eq,
		CurrentPosition: position,
		CurrentState:    state,
		StateHistory:    history,
		Model:           model,
	}, nil
}

func (e *Enricher) fetchPositions(ctx context.Context, equipmentID string) ([]PositionSample, error) {
	if e.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.FetchTimeout)
		defer cancel()
	}
	samples, err := e.positions.FetchPositions(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("positions of %q: %w: %v", equipmentID, ErrUnavailable, ctx.Err())
	}
	return samples, nil
}

// EnrichAll enriches every equipment concurrently. The results keep the input
// order and a failing item never affects its siblings.
func (e *Enricher) EnrichAll(ctx context.Context, equipment []Equipment) []Result {
	results := make([]Result, len(equipment))

	var g errgroup.Group
	if e.opts.Concurrency > 0 {
		g.SetLimit(e.opts.Concurrency)
	}
	for i, eq := range equipment {
		g.Go(func() error {
			details, err := e.Enrich(ctx, eq)
			if err != nil {
				results[i] = Result{Equipment: eq, Err: err}
				return nil
			}
			results[i] = Result{Equipment: eq, Details: &details}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
