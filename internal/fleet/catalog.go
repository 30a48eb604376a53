package fleet

import "fmt"

// Sentinels returned by the lookups that never fail.
const (
	UnknownStateName  = "Desconhecido"
	DefaultStateColor = "#999999"
)

// Catalog resolves ids against the reference tables. It is safe for
// concurrent use because it is never written after NewCatalog returns.
type Catalog struct {
	tables    *Tables
	states    map[string]EquipmentState
	models    map[string]EquipmentModel
	positions map[string][]PositionSample
	histories map[string][]StateHistoryEntry
}

// NewCatalog indexes the tables by id. When an id appears more than once the
// first record wins, matching a linear find over the source table.
func NewCatalog(t *Tables) *Catalog {
	c := &Catalog{
		tables:    t,
		states:    make(map[string]EquipmentState, len(t.States)),
		models:    make(map[string]EquipmentModel, len(t.Models)),
		positions: make(map[string][]PositionSample, len(t.Positions)),
		histories: make(map[string][]StateHistoryEntry, len(t.StateHistories)),
	}
	for _, s := range t.States {
		if _, ok := c.states[s.ID]; !ok {
			c.states[s.ID] = s
		}
	}
	for _, m := range t.Models {
		if _, ok := c.models[m.ID]; !ok {
			c.models[m.ID] = m
		}
	}
	for _, ph := range t.Positions {
		if _, ok := c.positions[ph.EquipmentID]; !ok {
			c.positions[ph.EquipmentID] = ph.Positions
		}
	}
	for _, sh := range t.StateHistories {
		if _, ok := c.histories[sh.EquipmentID]; !ok {
			c.histories[sh.EquipmentID] = sh.States
		}
	}
	return c
}

// StateName returns the display name of a state, or UnknownStateName.
func (c *Catalog) StateName(stateID string) string {
	if s, ok := c.states[stateID]; ok && s.Name != "" {
		return s.Name
	}
	return UnknownStateName
}

// StateColor returns the color token of a state, or DefaultStateColor.
func (c *Catalog) StateColor(stateID string) string {
	if s, ok := c.states[stateID]; ok && s.Color != "" {
		return s.Color
	}
	return DefaultStateColor
}

// State returns the catalog entry for stateID.
func (c *Catalog) State(stateID string) (EquipmentState, error) {
	s, ok := c.states[stateID]
	if !ok {
		return EquipmentState{}, fmt.Errorf("equipment state %q: %w", stateID, ErrNotFound)
	}
	return s, nil
}

// Model returns the equipment model for modelID.
// Unlike the name and color lookups, an unknown id is an error.
func (c *Catalog) Model(modelID string) (EquipmentModel, error) {
	m, ok := c.models[modelID]
	if !ok {
		return EquipmentModel{}, fmt.Errorf("equipment model %q: %w", modelID, ErrNotFound)
	}
	return m, nil
}

// HourlyEarning returns the rate of modelID while in stateID. A model with no
// entry for the state earns 0; an unknown model is ErrNotFound.
func (c *Catalog) HourlyEarning(modelID, stateID string) (float64, error) {
	m, err := c.Model(modelID)
	if err != nil {
		return 0, err
	}
	for _, he := range m.HourlyEarnings {
		if he.EquipmentStateID == stateID {
			return he.Value, nil
		}
	}
	return 0, nil
}

// StateHistory returns the recorded transitions of an equipment. It is never nil.
func (c *Catalog) StateHistory(equipmentID string) []StateHistoryEntry {
	if h, ok := c.histories[equipmentID]; ok && h != nil {
		return h
	}
	return []StateHistoryEntry{}
}

// Positions returns the position samples of an equipment, or nil.
func (c *Catalog) Positions(equipmentID string) []PositionSample {
	return c.positions[equipmentID]
}

// Equipment returns the equipment table in source order.
func (c *Catalog) Equipment() []Equipment { return c.tables.Equipment }

// Models returns the model table in source order.
func (c *Catalog) Models() []EquipmentModel { return c.tables.Models }

// States returns the state table in source order.
func (c *Catalog) States() []EquipmentState { return c.tables.States }
