package models

import (
	"time"

	"gorm.io/datatypes"
)

// GuideRecord persists a ScaleGuide under its (root, scale) cache key
type GuideRecord struct {
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt *time.Time     `gorm:"index" json:"expires_at,omitempty"`
}

// TableName overrides the default table name
func (GuideRecord) TableName() string {
	return "scale_guides"
}

// Expired reports whether the record is past its expiry at the given time
func (r GuideRecord) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
