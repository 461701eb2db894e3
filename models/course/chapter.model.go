package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ContentVideo      = "video"
	ContentQuiz       = "quiz"
	ContentReading    = "reading"
	ContentAssignment = "assignment"
)

// Chapter is an individual lesson. CourseID duplicates the module's course so
// progress recomputation can count chapters without a join.
type Chapter struct {
	gorm.Model
	ModuleID        uint           `json:"module_id" gorm:"index;not null"`
	CourseID        uint           `json:"course_id" gorm:"index;not null"`
	Title           string         `json:"title" gorm:"not null"`
	ContentType     string         `json:"content_type" gorm:"default:'video'"` // video, quiz, reading, assignment
	Content         datatypes.JSON `json:"content"`
	OrderIndex      uint           `json:"order_index" gorm:"default:0"`
	IsFree          bool           `json:"is_free" gorm:"default:false"`
	DurationSeconds uint           `json:"duration_seconds" gorm:"default:0"`
	IsDeleted       bool           `json:"-" gorm:"default:false"`
}
