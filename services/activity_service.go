package services

import (
	"encoding/json"
	"log"
	"time"

	"lms/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordActivity appends one row to the activity log. Logging failures are not
// surfaced to callers; the triggering operation already succeeded.
func RecordActivity(db *gorm.DB, userID uint, action string, courseID *uint, details map[string]interface{}) {
	var detailsJSON datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("Error marshalling activity details: %v", err)
		} else {
			detailsJSON = raw
		}
	}

	activity := models.UserActivity{
		UserID:    userID,
		Action:    action,
		CourseID:  courseID,
		Details:   detailsJSON,
		Timestamp: time.Now(),
	}

	if err := db.Create(&activity).Error; err != nil {
		log.Printf("Error recording user activity: %v", err)
	}
}

// RecentActivities returns the latest activity rows for one user, newest first.
func RecentActivities(db *gorm.DB, userID uint, limit int) []models.UserActivity {
	var activities []models.UserActivity
	db.Where("user_id = ?", userID).Order("timestamp desc").Limit(limit).Find(&activities)
	return activities
}
