package view

import (
	"sort"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/fleet"
)

// Marker is one equipment pin on the map.
type Marker struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Lat   float64    `json:"lat"`
	Lon   float64    `json:"lon"`
	State StateLabel `json:"state"`
}

// MapView is the payload of the map endpoint.
type MapView struct {
	Center struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// NewMapView places one marker per view at its current position.
func NewMapView(cfg config.MapConfig, c *fleet.Catalog, views []fleet.EquipmentWithDetails) MapView {
	var m MapView
	m.Center.Lat = cfg.CenterLat
	m.Center.Lon = cfg.CenterLon
	m.Zoom = cfg.Zoom
	m.Markers = make([]Marker, 0, len(views))
	for _, v := range views {
		m.Markers = append(m.Markers, Marker{
			ID:    v.ID,
			Name:  v.Name,
			Lat:   v.CurrentPosition.Lat,
			Lon:   v.CurrentPosition.Lon,
			State: stateLabel(c, v.CurrentState.ID),
		})
	}
	return m
}

// StateCount is the number of equipment currently in one state.
type StateCount struct {
	State StateLabel `json:"state"`
	Count int        `json:"count"`
}

// Summary aggregates the current snapshot.
type Summary struct {
	Total          int            `json:"total"`
	Enriched       int            `json:"enriched"`
	Failed         int            `json:"failed"`
	ByState        []StateCount   `json:"byState"`
	HourlyTotal    Earning        `json:"hourlyEarningTotal"`
	FailedByReason map[string]int `json:"failedByReason"`
}

// NewSummary counts equipment per current state and sums their hourly earnings.
// States are listed in catalog order, followed by any state unknown to the catalog.
func NewSummary(c *fleet.Catalog, results []fleet.Result) Summary {
	s := Summary{Total: len(results), FailedByReason: map[string]int{}}

	counts := map[string]int{}
	var total float64
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			s.FailedByReason[fleet.Reason(r.Err)]++
			continue
		}
		s.Enriched++
		counts[r.Details.CurrentState.ID]++
		v, _ := c.HourlyEarning(r.Details.Model.ID, r.Details.CurrentState.ID)
		total += v
	}

	for _, st := range c.States() {
		if n, ok := counts[st.ID]; ok {
			s.ByState = append(s.ByState, StateCount{State: stateLabel(c, st.ID), Count: n})
			delete(counts, st.ID)
		}
	}
	rest := make([]string, 0, len(counts))
	for id := range counts {
		rest = append(rest, id)
	}
	sort.Strings(rest)
	for _, id := range rest {
		s.ByState = append(s.ByState, StateCount{State: stateLabel(c, id), Count: counts[id]})
	}
	if s.ByState == nil {
		s.ByState = []StateCount{}
	}

	s.HourlyTotal = Earning{Value: total, Display: FormatCurrency(total), Positive: total >= 0}
	return s
}
