package services

import (
	"time"

	"lms/models"
	analyticsModels "lms/models/analytics"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SessionResult pairs a closed session with the metric it updated, if any.
type SessionResult struct {
	Session *analyticsModels.SessionData    `json:"session"`
	Metric  *analyticsModels.LearningMetric `json:"metric,omitempty"`
}

// StartSession opens a timed learning session. A chapter reference implies its
// course when no course is given. Concurrent open sessions are allowed.
func StartSession(db *gorm.DB, actor Identity, courseID, chapterID *uint, ip, userAgent string) (*analyticsModels.SessionData, error) {
	var crs *courseModels.Course

	if courseID != nil {
		var c courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", *courseID, false).First(&c).Error; err != nil {
			return nil, NotFound("Course not found!")
		}
		crs = &c
	}

	var chapter *courseModels.Chapter
	if chapterID != nil {
		var ch courseModels.Chapter
		if err := db.Where("id = ? AND is_deleted = ?", *chapterID, false).First(&ch).Error; err != nil {
			return nil, NotFound("Chapter not found!")
		}
		chapter = &ch

		if crs == nil {
			var c courseModels.Course
			if err := db.Where("id = ? AND is_deleted = ?", ch.CourseID, false).First(&c).Error; err != nil {
				return nil, NotFound("Course not found!")
			}
			crs = &c
		}
	}

	session := analyticsModels.SessionData{
		UserID:    actor.UserID,
		StartTime: time.Now(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if crs != nil {
		session.CourseID = &crs.ID
	}
	if chapter != nil {
		session.ChapterID = &chapter.ID
	}

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	if crs != nil {
		action := models.ActionViewCourse
		details := map[string]interface{}{"course_title": crs.Title}
		if chapter != nil {
			action = models.ActionViewChapter
			details["chapter_id"] = chapter.ID
			details["chapter_title"] = chapter.Title
		}
		RecordActivity(db, actor.UserID, action, &crs.ID, details)
	}

	return &session, nil
}

// CloseSession ends an open session and folds its duration into the learning
// metric for the session's course, when the user holds an enrollment there.
// Sessions without a course, or without an enrollment, close with duration
// recorded and no metric update.
func CloseSession(db *gorm.DB, actor Identity, sessionID uint) (*SessionResult, error) {
	var session analyticsModels.SessionData
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		return nil, NotFound("Session not found!")
	}

	if session.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, PermissionDenied("You do not have permission to end this session!")
	}

	if session.EndTime != nil {
		return nil, InvalidState("Session already ended!")
	}

	endTime := time.Now()
	session.EndTime = &endTime

	// Clock skew or hand-edited rows can put start_time in the future; a
	// negative span must not wrap into a huge unsigned duration.
	duration := endTime.Sub(session.StartTime).Seconds()
	if duration < 0 {
		duration = 0
	}
	session.DurationSeconds = uint(duration)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Save(&session).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var metric *analyticsModels.LearningMetric
	if session.CourseID != nil {
		var enrollment courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", session.UserID, *session.CourseID, false).
			First(&enrollment).Error
		if err == nil {
			metric, err = applySessionToMetric(tx, &session, &enrollment)
			if err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		// Not enrolled: the session still closes, metrics stay untouched.
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &SessionResult{Session: &session, Metric: metric}, nil
}

// applySessionToMetric accumulates the closed session into the per-enrollment
// learning metric. TimeSpent and AccessCount only grow; EngagementScore is
// overwritten to reflect the session just closed.
func applySessionToMetric(tx *gorm.DB, session *analyticsModels.SessionData, enrollment *courseModels.Enrollment) (*analyticsModels.LearningMetric, error) {
	var metric analyticsModels.LearningMetric
	res := tx.Where("user_id = ? AND course_id = ?", session.UserID, *session.CourseID).
		Attrs(analyticsModels.LearningMetric{
			UserID:       session.UserID,
			CourseID:     *session.CourseID,
			EnrollmentID: enrollment.ID,
		}).
		FirstOrCreate(&metric)
	if res.Error != nil {
		return nil, res.Error
	}

	if session.DurationSeconds > 0 {
		metric.TimeSpent += session.DurationSeconds
	}
	metric.AccessCount++

	timeFactor := 0.0
	if session.DurationSeconds > 0 {
		timeFactor = float64(session.DurationSeconds) / 300
		if timeFactor > 1 {
			timeFactor = 1
		}
	}
	progressFactor := enrollment.Progress / 100
	metric.EngagementScore = timeFactor*0.6 + progressFactor*0.4

	if err := tx.Save(&metric).Error; err != nil {
		return nil, err
	}
	return &metric, nil
}
