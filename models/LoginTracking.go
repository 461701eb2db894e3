package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking stores login metadata for audit and daily login counts
type LoginTracking struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}
