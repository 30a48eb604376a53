package fleet

import "time"

// EquipmentState is a catalog entry describing one operating state.
type EquipmentState struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// HourlyEarning is the signed rate (currency/hour) a model earns while in one state.
type HourlyEarning struct {
	EquipmentStateID string  `json:"equipmentStateId"`
	Value            float64 `json:"value"`
}

// EquipmentModel groups equipment sharing the same per-state earnings.
type EquipmentModel struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	HourlyEarnings []HourlyEarning `json:"hourlyEarnings"`
}

// PositionSample is one GPS fix. At is parsed from Date when the tables are built.
type PositionSample struct {
	Date string    `json:"date"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	At   time.Time `json:"-"`
}

// PositionHistory holds every known fix for one equipment.
type PositionHistory struct {
	EquipmentID string           `json:"equipmentId"`
	Positions   []PositionSample `json:"positions"`
}

// Equipment is the bare identity record.
type Equipment struct {
	ID               string `json:"id"`
	EquipmentModelID string `json:"equipmentModelId"`
	Name             string `json:"name"`
}

// StateHistoryEntry records one state transition.
type StateHistoryEntry struct {
	EquipmentStateID string `json:"equipmentStateId"`
	Date             string `json:"date"`
}

// StateHistory holds the transitions of one equipment, most recent first.
type StateHistory struct {
	EquipmentID string              `json:"equipmentId"`
	States      []StateHistoryEntry `json:"states"`
}

// EquipmentWithDetails is the materialized view built by the Enricher.
// It is never mutated after construction.
type EquipmentWithDetails struct {
	Equipment
	CurrentPosition PositionSample      `json:"currentPosition"`
	CurrentState    EquipmentState      `json:"currentState"`
	StateHistory    []StateHistoryEntry `json:"stateHistory"`
	Model           EquipmentModel      `json:"model"`
}
