package store

import (
	"gorm.io/gorm"

	"fleet-dashboard-backend/internal/fleet"
	"fleet-dashboard-backend/internal/model"
)

const insertBatchSize = 500

type tableRows struct {
	states    []model.EquipmentState
	models    []model.EquipmentModel
	earnings  []model.HourlyEarning
	equipment []model.Equipment
	positions []model.PositionSample
	history   []model.StateHistoryEntry
}

// toRows flattens the dataset into table rows, recording source order in
// Record and Seq.
func toRows(t *fleet.Tables) tableRows {
	var rows tableRows
	for i, s := range t.States {
		rows.states = append(rows.states, model.EquipmentState{ID: s.ID, Name: s.Name, Color: s.Color, Seq: i})
	}
	for i, m := range t.Models {
		rows.models = append(rows.models, model.EquipmentModel{ID: m.ID, Name: m.Name, Seq: i})
		for j, he := range m.HourlyEarnings {
			rows.earnings = append(rows.earnings, model.HourlyEarning{
				EquipmentModelID: m.ID,
				EquipmentStateID: he.EquipmentStateID,
				Value:            he.Value,
				Seq:              j,
			})
		}
	}
	for i, e := range t.Equipment {
		rows.equipment = append(rows.equipment, model.Equipment{ID: e.ID, EquipmentModelID: e.EquipmentModelID, Name: e.Name, Seq: i})
	}
	// Only the first record per equipment is stored, as it is the only one the
	// catalog reads.
	seen := make(map[string]bool, len(t.Positions))
	for i, ph := range t.Positions {
		if seen[ph.EquipmentID] {
			continue
		}
		seen[ph.EquipmentID] = true
		for j, p := range ph.Positions {
			rows.positions = append(rows.positions, model.PositionSample{EquipmentID: ph.EquipmentID, Record: i, Seq: j, Date: p.Date, Lat: p.Lat, Lon: p.Lon})
		}
	}
	seen = make(map[string]bool, len(t.StateHistories))
	for i, sh := range t.StateHistories {
		if seen[sh.EquipmentID] {
			continue
		}
		seen[sh.EquipmentID] = true
		for j, entry := range sh.States {
			rows.history = append(rows.history, model.StateHistoryEntry{EquipmentID: sh.EquipmentID, Record: i, Seq: j, EquipmentStateID: entry.EquipmentStateID, Date: entry.Date})
		}
	}
	return rows
}

func batchCreate[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, insertBatchSize).Error
}
