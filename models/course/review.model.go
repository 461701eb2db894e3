package course

import "gorm.io/gorm"

// Review is a course rating, one per (user, course)
type Review struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course_review"`
	CourseID  uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course_review"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"type:text;default:''"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
