// Package fixture reads the reference dataset from a directory of JSON files.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fleet-dashboard-backend/internal/fleet"
)

// File names of the five reference tables.
const (
	EquipmentFile       = "equipment.json"
	ModelFile           = "equipmentModel.json"
	StateFile           = "equipmentState.json"
	PositionHistoryFile = "equipmentPositionHistory.json"
	StateHistoryFile    = "equipmentStateHistory.json"
)

// Dir loads the reference tables from a directory.
type Dir struct {
	path string
}

// NewDir creates a loader for the fixture directory at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// LoadTables decodes and validates the five table files. A missing history
// file is treated as an empty table; the catalog files are required.
func (d *Dir) LoadTables(ctx context.Context) (*fleet.Tables, error) {
	var raw fleet.Tables

	required := []struct {
		name string
		dst  any
	}{
		{EquipmentFile, &raw.Equipment},
		{ModelFile, &raw.Models},
		{StateFile, &raw.States},
	}
	for _, f := range required {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.decode(f.name, f.dst); err != nil {
			return nil, err
		}
	}

	optional := []struct {
		name string
		dst  any
	}{
		{PositionHistoryFile, &raw.Positions},
		{StateHistoryFile, &raw.StateHistories},
	}
	for _, f := range optional {
		err := d.decode(f.name, f.dst)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return fleet.NewTables(raw)
}

func (d *Dir) decode(name string, dst any) error {
	f, err := os.Open(filepath.Join(d.path, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w: %v", name, fleet.ErrMalformed, err)
	}
	return nil
}
