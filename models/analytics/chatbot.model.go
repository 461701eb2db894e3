package analytics

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatbotInteraction logs one question/answer exchange with the AI assistant
type ChatbotInteraction struct {
	gorm.Model
	UserID   uint  `json:"user_id" gorm:"index;not null"`
	CourseID *uint `json:"course_id" gorm:"index"`

	Question string         `json:"question" gorm:"type:text;not null"`
	Answer   string         `json:"answer" gorm:"type:text"`
	Feedback *int           `json:"feedback"` // 1-5 rating of the answer
	Context  datatypes.JSON `json:"context"`

	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
