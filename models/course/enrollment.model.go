package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentPaused    = "paused"
	EnrollmentDropped   = "dropped"
)

// Enrollment tracks a user's registration in a course with aggregate progress.
// Progress reaching 100 moves status to completed exactly once; the transition
// is never reversed even if chapter progress later changes.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID    uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Status      string     `json:"status" gorm:"default:'active'"` // active, completed, paused, dropped
	Progress    float64    `json:"progress" gorm:"default:0"`      // completion percentage (0-100)
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `json:"-" gorm:"default:false"`
}
