package analytics

import "gorm.io/gorm"

// LearningMetric holds per-(user, course) derived learning numbers. TimeSpent
// and AccessCount only ever accumulate; EngagementScore is overwritten on every
// session close and reflects the latest session only.
type LearningMetric struct {
	gorm.Model
	UserID       uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course_metric"`
	CourseID     uint `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course_metric"`
	EnrollmentID uint `json:"enrollment_id" gorm:"index;not null"`

	TimeSpent       uint    `json:"time_spent" gorm:"default:0"` // seconds
	AccessCount     uint    `json:"access_count" gorm:"default:0"`
	EngagementScore float64 `json:"engagement_score" gorm:"default:0"`

	QuizAttempts         uint    `json:"quiz_attempts" gorm:"default:0"`
	QuizAverageScore     float64 `json:"quiz_average_score" gorm:"default:0"`
	AssignmentsCompleted uint    `json:"assignments_completed" gorm:"default:0"`
}
