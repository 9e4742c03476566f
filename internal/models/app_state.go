package models

import "time"

// AppStateInitialized guards the one-time seed population.
const AppStateInitialized = "initialized"

// AppState is a small key-value table for one-off application flags.
type AppState struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
