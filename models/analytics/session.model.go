package analytics

import (
	"time"

	"gorm.io/gorm"
)

// SessionData is a timed learning interval, optionally scoped to a course or
// chapter. DurationSeconds is derived once when the session closes. Concurrent
// open sessions for the same user are allowed and close independently.
type SessionData struct {
	gorm.Model
	UserID    uint  `json:"user_id" gorm:"index;not null"`
	CourseID  *uint `json:"course_id" gorm:"index"`
	ChapterID *uint `json:"chapter_id" gorm:"index"`

	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds uint       `json:"duration_seconds" gorm:"default:0"`

	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}
