package fleet

import (
	"errors"
	"fmt"

	"fleet-dashboard-backend/internal/parse"
)

// Table names used in SchemaError.
const (
	TableEquipment       = "equipment"
	TableModels          = "equipmentModel"
	TableStates          = "equipmentState"
	TablePositionHistory = "equipmentPositionHistory"
	TableStateHistory    = "equipmentStateHistory"
)

// Tables is the read-only reference dataset. Build it with NewTables and share
// it by pointer; nothing mutates it afterwards.
type Tables struct {
	Equipment      []Equipment       `json:"equipment"`
	Models         []EquipmentModel  `json:"equipmentModels"`
	States         []EquipmentState  `json:"equipmentStates"`
	Positions      []PositionHistory `json:"equipmentPositionHistory"`
	StateHistories []StateHistory    `json:"equipmentStateHistory"`
}

// NewTables validates raw and returns a copy with every position timestamp parsed.
// All violations are reported together as joined *SchemaError values.
func NewTables(raw Tables) (*Tables, error) {
	var errs []error
	invalid := func(table string, index int, field, reason string) {
		errs = append(errs, &SchemaError{Table: table, Index: index, Field: field, Reason: reason})
	}

	t := &Tables{
		Equipment:      append([]Equipment(nil), raw.Equipment...),
		Models:         append([]EquipmentModel(nil), raw.Models...),
		States:         append([]EquipmentState(nil), raw.States...),
		Positions:      make([]PositionHistory, len(raw.Positions)),
		StateHistories: append([]StateHistory(nil), raw.StateHistories...),
	}

	seen := make(map[string]bool, len(t.Equipment))
	for i, e := range t.Equipment {
		switch {
		case e.ID == "":
			invalid(TableEquipment, i, "id", "missing")
		case seen[e.ID]:
			invalid(TableEquipment, i, "id", fmt.Sprintf("duplicate id %q", e.ID))
		}
		seen[e.ID] = true
		if e.EquipmentModelID == "" {
			invalid(TableEquipment, i, "equipmentModelId", "missing")
		}
	}

	seen = make(map[string]bool, len(t.Models))
	for i, m := range t.Models {
		switch {
		case m.ID == "":
			invalid(TableModels, i, "id", "missing")
		case seen[m.ID]:
			invalid(TableModels, i, "id", fmt.Sprintf("duplicate id %q", m.ID))
		}
		seen[m.ID] = true
		for j, he := range m.HourlyEarnings {
			if he.EquipmentStateID == "" {
				invalid(TableModels, i, fmt.Sprintf("hourlyEarnings[%d].equipmentStateId", j), "missing")
			}
		}
	}

	seen = make(map[string]bool, len(t.States))
	for i, s := range t.States {
		switch {
		case s.ID == "":
			invalid(TableStates, i, "id", "missing")
		case seen[s.ID]:
			invalid(TableStates, i, "id", fmt.Sprintf("duplicate id %q", s.ID))
		}
		seen[s.ID] = true
	}

	for i, ph := range raw.Positions {
		if ph.EquipmentID == "" {
			invalid(TablePositionHistory, i, "equipmentId", "missing")
		}
		samples := make([]PositionSample, len(ph.Positions))
		for j, p := range ph.Positions {
			at, err := parse.ParseTimestamp(p.Date)
			if err != nil {
				invalid(TablePositionHistory, i, fmt.Sprintf("positions[%d].date", j), err.Error())
			}
			if p.Lat < -90 || p.Lat > 90 {
				invalid(TablePositionHistory, i, fmt.Sprintf("positions[%d].lat", j), "out of range")
			}
			if p.Lon < -180 || p.Lon > 180 {
				invalid(TablePositionHistory, i, fmt.Sprintf("positions[%d].lon", j), "out of range")
			}
			p.At = at
			samples[j] = p
		}
		t.Positions[i] = PositionHistory{EquipmentID: ph.EquipmentID, Positions: samples}
	}

	for i, sh := range t.StateHistories {
		if sh.EquipmentID == "" {
			invalid(TableStateHistory, i, "equipmentId", "missing")
		}
		for j, entry := range sh.States {
			if entry.EquipmentStateID == "" {
				invalid(TableStateHistory, i, fmt.Sprintf("states[%d].equipmentStateId", j), "missing")
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}
