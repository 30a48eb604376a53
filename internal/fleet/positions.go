package fleet

import (
	"context"
	"fmt"
	"time"
)

// PositionSource fetches the position samples of one equipment. It is the
// only step of the enrichment that may block.
type PositionSource interface {
	FetchPositions(ctx context.Context, equipmentID string) ([]PositionSample, error)
}

// TablePositions serves positions from the reference tables, optionally after
// an artificial delay that emulates a remote fetch.
type TablePositions struct {
	catalog *Catalog
	delay   time.Duration
}

// NewTablePositions creates a PositionSource backed by the catalog.
func NewTablePositions(c *Catalog, delay time.Duration) *TablePositions {
	return &TablePositions{catalog: c, delay: delay}
}

// FetchPositions returns the samples for equipmentID; an equipment without a
// position record yields an empty list.
func (p *TablePositions) FetchPositions(ctx context.Context, equipmentID string) ([]PositionSample, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("positions of %q: %w: %v", equipmentID, ErrUnavailable, ctx.Err())
		case <-timer.C:
		}
	}
	return p.catalog.Positions(equipmentID), nil
}

// LatestPosition returns the sample with the greatest timestamp. On equal
// timestamps the earlier sample in the list is kept.
func LatestPosition(samples []PositionSample) (PositionSample, error) {
	if len(samples) == 0 {
		return PositionSample{}, fmt.Errorf("latest position: %w", ErrEmpty)
	}
	latest := samples[0]
	for _, s := range samples[1:] {
		if s.At.After(latest.At) {
			latest = s
		}
	}
	return latest, nil
}
