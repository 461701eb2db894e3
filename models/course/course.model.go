package course

import "gorm.io/gorm"

// Category groups courses (e.g. Programming, Data Science)
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
}

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string  `json:"title" gorm:"not null"`
	Slug         string  `json:"slug" gorm:"unique;not null"`
	Description  string  `json:"description" gorm:"type:text;default:''"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	CategoryID   *uint   `json:"category_id" gorm:"index"`
	Level        string  `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Price        float64 `json:"price" gorm:"default:0"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}
