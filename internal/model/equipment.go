package model

import "time"

// Equipment is one machine of the fleet. Seq keeps the dataset order.
type Equipment struct {
	ID               string    `gorm:"primaryKey;size:64"`
	EquipmentModelID string    `gorm:"index;size:64;not null"`
	Name             string    `gorm:"size:256;not null"`
	Seq              int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (Equipment) TableName() string { return "equipment" }

// EquipmentModel is a model of equipment with its per-state earnings.
type EquipmentModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:256;not null"`
	Seq       int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	HourlyEarnings []HourlyEarning `gorm:"foreignKey:EquipmentModelID;constraint:OnDelete:CASCADE"`
}

func (EquipmentModel) TableName() string { return "equipment_models" }

// HourlyEarning is the rate of one model in one state. Seq matters: the
// first entry of a model names its primary state.
type HourlyEarning struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	EquipmentModelID string  `gorm:"index;size:64;not null"`
	EquipmentStateID string  `gorm:"size:64;not null"`
	Value            float64 `gorm:"not null"`
	Seq              int     `gorm:"not null"`
}

func (HourlyEarning) TableName() string { return "hourly_earnings" }

// EquipmentState is a catalog state with its display color.
type EquipmentState struct {
	ID    string `gorm:"primaryKey;size:64"`
	Name  string `gorm:"size:128;not null"`
	Color string `gorm:"size:32;not null"`
	Seq   int    `gorm:"not null"`
}

func (EquipmentState) TableName() string { return "equipment_states" }
