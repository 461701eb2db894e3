package course

import "gorm.io/gorm"

// Module is a group of chapters inside a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
	OrderIndex  uint   `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
