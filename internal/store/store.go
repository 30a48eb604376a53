package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet-dashboard-backend/internal/fleet"
	"fleet-dashboard-backend/internal/model"
)

// Store defines the database operations on the reference dataset.
type Store interface {
	LoadTables(ctx context.Context) (*fleet.Tables, error)
	ReplaceTables(ctx context.Context, t *fleet.Tables) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// LoadTables reads the five reference tables in dataset order and validates them.
func (s *gormStore) LoadTables(ctx context.Context) (*fleet.Tables, error) {
	db := s.db.WithContext(ctx)

	var states []model.EquipmentState
	if err := db.Order("seq").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch equipment states: %w", err)
	}
	var models []model.EquipmentModel
	if err := db.Order("seq").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch equipment models: %w", err)
	}
	var earnings []model.HourlyEarning
	if err := db.Order("equipment_model_id, seq").Find(&earnings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch hourly earnings: %w", err)
	}
	var equipment []model.Equipment
	if err := db.Order("seq").Find(&equipment).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}
	var positions []model.PositionSample
	if err := db.Order("record, seq").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch position samples: %w", err)
	}
	var history []model.StateHistoryEntry
	if err := db.Order("record, seq").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch state history: %w", err)
	}

	var raw fleet.Tables
	for _, st := range states {
		raw.States = append(raw.States, fleet.EquipmentState{ID: st.ID, Name: st.Name, Color: st.Color})
	}

	earningsByModel := make(map[string][]fleet.HourlyEarning, len(models))
	for _, he := range earnings {
		earningsByModel[he.EquipmentModelID] = append(earningsByModel[he.EquipmentModelID], fleet.HourlyEarning{
			EquipmentStateID: he.EquipmentStateID,
			Value:            he.Value,
		})
	}
	for _, m := range models {
		raw.Models = append(raw.Models, fleet.EquipmentModel{ID: m.ID, Name: m.Name, HourlyEarnings: earningsByModel[m.ID]})
	}

	for _, e := range equipment {
		raw.Equipment = append(raw.Equipment, fleet.Equipment{ID: e.ID, EquipmentModelID: e.EquipmentModelID, Name: e.Name})
	}

	// Rows are sorted by record, so each source record forms one contiguous run.
	// A record with no samples or entries is not stored and is not rebuilt.
	record := -1
	for _, p := range positions {
		n := len(raw.Positions)
		if n == 0 || p.Record != record {
			record = p.Record
			raw.Positions = append(raw.Positions, fleet.PositionHistory{EquipmentID: p.EquipmentID})
			n++
		}
		raw.Positions[n-1].Positions = append(raw.Positions[n-1].Positions, fleet.PositionSample{Date: p.Date, Lat: p.Lat, Lon: p.Lon})
	}
	record = -1
	for _, h := range history {
		n := len(raw.StateHistories)
		if n == 0 || h.Record != record {
			record = h.Record
			raw.StateHistories = append(raw.StateHistories, fleet.StateHistory{EquipmentID: h.EquipmentID})
			n++
		}
		raw.StateHistories[n-1].States = append(raw.StateHistories[n-1].States, fleet.StateHistoryEntry{
			EquipmentStateID: h.EquipmentStateID,
			Date:             h.Date,
		})
	}

	return fleet.NewTables(raw)
}

// ReplaceTables swaps the stored dataset for t in a single transaction.
func (s *gormStore) ReplaceTables(ctx context.Context, t *fleet.Tables) error {
	rows := toRows(t)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{
			&model.StateHistoryEntry{},
			&model.PositionSample{},
			&model.Equipment{},
			&model.HourlyEarning{},
			&model.EquipmentModel{},
			&model.EquipmentState{},
		} {
			if err := wipe.Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}

		if err := batchCreate(tx, rows.states); err != nil {
			return fmt.Errorf("failed to insert equipment states: %w", err)
		}
		if err := batchCreate(tx, rows.models); err != nil {
			return fmt.Errorf("failed to insert equipment models: %w", err)
		}
		if err := batchCreate(tx, rows.earnings); err != nil {
			return fmt.Errorf("failed to insert hourly earnings: %w", err)
		}
		if err := batchCreate(tx, rows.equipment); err != nil {
			return fmt.Errorf("failed to insert equipment: %w", err)
		}
		if err := batchCreate(tx, rows.positions); err != nil {
			return fmt.Errorf("failed to insert position samples: %w", err)
		}
		if err := batchCreate(tx, rows.history); err != nil {
			return fmt.Errorf("failed to insert state history: %w", err)
		}
		return nil
	})
}
