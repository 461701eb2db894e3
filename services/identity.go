package services

import (
	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Identity is the acting user passed explicitly into every service operation.
// Controllers build it from JWT claims; nothing in this package reads request
// state or globals.
type Identity struct {
	UserID uint
	Role   string
}

func (id Identity) IsAdmin() bool      { return id.Role == models.RoleAdmin }
func (id Identity) IsInstructor() bool { return id.Role == models.RoleInstructor }

// Capability is one of the closed permission set resolved per (actor, course).
type Capability string

const (
	CapRead  Capability = "read"
	CapWrite Capability = "write"
	CapGrade Capability = "grade"
)

type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// ResolveCapabilities is the single permission-resolution point for course
// resources. Admins and the course instructor get everything; enrolled users
// get read; everyone else gets nothing.
func ResolveCapabilities(db *gorm.DB, actor Identity, crs *courseModels.Course) CapabilitySet {
	caps := CapabilitySet{}

	if actor.IsAdmin() || crs.InstructorID == actor.UserID {
		caps[CapRead] = true
		caps[CapWrite] = true
		caps[CapGrade] = true
		return caps
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.UserID, crs.ID, false).
		First(&enrollment).Error; err == nil {
		caps[CapRead] = true
	}

	return caps
}
