package view

import (
	"time"

	"fleet-dashboard-backend/internal/fleet"
)

// Earning is an hourly rate with its display form.
type Earning struct {
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	Positive bool    `json:"positive"`
}

// StateLabel is a state badge.
type StateLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ModelLabel names the model of an equipment.
type ModelLabel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Position is the current position with its display date.
type Position struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// HistoryRow is one annotated state transition.
type HistoryRow struct {
	State       StateLabel `json:"state"`
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	Earning     Earning    `json:"hourlyEarning"`
}

// EquipmentItem is one row of the equipment list.
type EquipmentItem struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Model           ModelLabel   `json:"model"`
	CurrentState    StateLabel   `json:"currentState"`
	CurrentPosition Position     `json:"currentPosition"`
	Earning         Earning      `json:"hourlyEarning"`
	LastUpdate      string       `json:"lastUpdate,omitempty"`
	History         []HistoryRow `json:"stateHistory"`
	HistoryNote     string       `json:"stateHistoryNote,omitempty"`
}

// FailureItem describes an equipment whose enrichment failed.
type FailureItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// List is the payload of the equipment list endpoint.
type List struct {
	Items    []EquipmentItem `json:"items"`
	Failures []FailureItem   `json:"failures"`
	LoadedAt time.Time       `json:"loadedAt"`
}

func earning(c *fleet.Catalog, modelID, stateID string) Earning {
	// An unknown model renders as no rate defined.
	v, _ := c.HourlyEarning(modelID, stateID)
	return Earning{Value: v, Display: FormatCurrency(v), Positive: v >= 0}
}

func stateLabel(c *fleet.Catalog, stateID string) StateLabel {
	return StateLabel{ID: stateID, Name: c.StateName(stateID), Color: c.StateColor(stateID)}
}

// History annotates the state history of one equipment.
func History(c *fleet.Catalog, d fleet.EquipmentWithDetails) []HistoryRow {
	rows := make([]HistoryRow, 0, len(d.StateHistory))
	for _, entry := range d.StateHistory {
		rows = append(rows, HistoryRow{
			State:       stateLabel(c, entry.EquipmentStateID),
			Date:        entry.Date,
			DisplayDate: FormatDate(entry.Date),
			Earning:     earning(c, d.Model.ID, entry.EquipmentStateID),
		})
	}
	return rows
}

// Item builds the list row of an enriched equipment.
func Item(c *fleet.Catalog, d fleet.EquipmentWithDetails) EquipmentItem {
	item := EquipmentItem{
		ID:   d.ID,
		Name: d.Name,
		Model: ModelLabel{
			ID:   d.Model.ID,
			Name: d.Model.Name,
		},
		CurrentState: stateLabel(c, d.CurrentState.ID),
		CurrentPosition: Position{
			Date:        d.CurrentPosition.Date,
			DisplayDate: FormatDate(d.CurrentPosition.Date),
			Lat:         d.CurrentPosition.Lat,
			Lon:         d.CurrentPosition.Lon,
		},
		Earning: earning(c, d.Model.ID, d.CurrentState.ID),
		History: History(c, d),
	}
	if item.Model.Name == "" {
		item.Model.Name = ModelUnavailable
	}

	if item.CurrentState.Name != OperatingStateName {
		if len(d.StateHistory) > 0 {
			item.LastUpdate = FormatDate(d.StateHistory[0].Date)
		} else {
			item.LastUpdate = DateUnavailable
		}
	}
	if len(item.History) == 0 {
		item.HistoryNote = NoHistory
	}
	return item
}

// Failure builds the payload of a failed enrichment.
func Failure(r fleet.Result) FailureItem {
	return FailureItem{
		ID:      r.Equipment.ID,
		Name:    r.Equipment.Name,
		Reason:  fleet.Reason(r.Err),
		Message: r.Err.Error(),
	}
}

// NewList builds the list payload for views, which must come from the same
// snapshot as c and failures.
func NewList(c *fleet.Catalog, views []fleet.EquipmentWithDetails, failures []fleet.Result, loadedAt time.Time) List {
	list := List{
		Items:    make([]EquipmentItem, 0, len(views)),
		Failures: make([]FailureItem, 0, len(failures)),
		LoadedAt: loadedAt,
	}
	for _, v := range views {
		list.Items = append(list.Items, Item(c, v))
	}
	for _, f := range failures {
		list.Failures = append(list.Failures, Failure(f))
	}
	return list
}
