package models

import "time"

// Snapshot is one persisted key/value pair of cart state.
type Snapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Snapshot) TableName() string { return "snapshots" }
