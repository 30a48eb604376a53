package model

// PositionSample is one GPS fix of an equipment. Date is kept as the
// dataset's ISO-8601 text. Record is the index of the position-history record
// the fix came from, so duplicate records for one equipment stay apart.
type PositionSample struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	EquipmentID string  `gorm:"index;size:64;not null"`
	Record      int     `gorm:"index:idx_position_record_seq,priority:1;not null"`
	Seq         int     `gorm:"index:idx_position_record_seq,priority:2;not null"`
	Date        string  `gorm:"size:64;not null"`
	Lat         float64 `gorm:"not null"`
	Lon         float64 `gorm:"not null"`
}

func (PositionSample) TableName() string { return "position_samples" }

// StateHistoryEntry is one state transition of an equipment, stored in the
// dataset's order (most recent first).
type StateHistoryEntry struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	EquipmentID      string `gorm:"index;size:64;not null"`
	Record           int    `gorm:"index:idx_state_history_record_seq,priority:1;not null"`
	Seq              int    `gorm:"index:idx_state_history_record_seq,priority:2;not null"`
	EquipmentStateID string `gorm:"size:64;not null"`
	Date             string `gorm:"size:64;not null"`
}

func (StateHistoryEntry) TableName() string { return "state_history_entries" }
