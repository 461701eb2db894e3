package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Progress is a learner's per-chapter record within one enrollment. Created
// lazily on the first progress event; CompletedAt is set only on the first
// transition into completed.
type Progress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"index;not null;uniqueIndex:idx_enrollment_chapter"`
	ChapterID    uint       `json:"chapter_id" gorm:"index;not null;uniqueIndex:idx_enrollment_chapter"`
	Status       string     `json:"status" gorm:"default:'not_started'"` // not_started, in_progress, completed
	Position     uint       `json:"position" gorm:"default:0"`           // playback offset in seconds
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastAccessed time.Time  `json:"last_accessed"`
}
