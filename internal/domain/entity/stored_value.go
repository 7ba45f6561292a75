package entity

import "time"

// Well-known keys of the key/value store
const (
	AuthStorageKey    = "auth-storage"
	DashboardNotesKey = "dashboard-notes"
	AuthPasswordKey   = "auth-password"
	AuthGenerationKey = "auth-generation"
)

// StoredValue is an opaque blob persisted under a string key
type StoredValue struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoredValue model
func (StoredValue) TableName() string {
	return "stored_values"
}
