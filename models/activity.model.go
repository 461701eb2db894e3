package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionViewCourse      = "view_course"
	ActionViewChapter     = "view_chapter"
	ActionCompleteChapter = "complete_chapter"
	ActionEnrollCourse    = "enroll_course"
	ActionCompleteCourse  = "complete_course"
	ActionReview          = "review"
)

// UserActivity is the platform-wide activity log feeding dashboards and streaks.
// CourseID is denormalised out of Details so course dashboards can filter cheaply.
type UserActivity struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Action    string         `json:"action" gorm:"index;not null"`
	CourseID  *uint          `json:"course_id" gorm:"index"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Timestamp time.Time      `json:"timestamp" gorm:"index"`
}
