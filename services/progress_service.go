package services

import (
	"log"
	"strconv"
	"time"

	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"gorm.io/gorm"
)

// ChapterProgressResult is what a progress event returns: the per-chapter
// record plus the (possibly transitioned) enrollment.
type ChapterProgressResult struct {
	Progress        *courseModels.Progress   `json:"progress"`
	Enrollment      *courseModels.Enrollment `json:"enrollment"`
	CourseCompleted bool                     `json:"course_completed"`
}

func validProgressStatus(status string) bool {
	switch status {
	case courseModels.ProgressNotStarted, courseModels.ProgressInProgress, courseModels.ProgressCompleted:
		return true
	}
	return false
}

// findOrCreateProgress fetches the (enrollment, chapter) progress row, creating
// it on first access. The created flag lets callers distinguish initialization
// from update.
func findOrCreateProgress(tx *gorm.DB, enrollmentID, chapterID uint) (*courseModels.Progress, bool, error) {
	var prog courseModels.Progress
	res := tx.Where("enrollment_id = ? AND chapter_id = ?", enrollmentID, chapterID).
		Attrs(courseModels.Progress{
			EnrollmentID: enrollmentID,
			ChapterID:    chapterID,
			Status:       courseModels.ProgressNotStarted,
		}).
		FirstOrCreate(&prog)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &prog, res.RowsAffected > 0, nil
}

// recomputeEnrollmentProgress recalculates an enrollment's aggregate from its
// chapter completions and applies the one-directional active to completed
// transition. A course with no live chapters leaves the enrollment untouched.
func recomputeEnrollmentProgress(tx *gorm.DB, enrollment *courseModels.Enrollment, courseID uint, nowTime time.Time) (bool, error) {
	var totalChapters, completedChapters int64
	tx.Model(&courseModels.Chapter{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalChapters)
	tx.Model(&courseModels.Progress{}).Where("enrollment_id = ? AND status = ?", enrollment.ID, courseModels.ProgressCompleted).Count(&completedChapters)

	if totalChapters == 0 {
		return false, nil
	}

	enrollment.Progress = float64(completedChapters) / float64(totalChapters) * 100

	courseCompleted := false
	if enrollment.Progress >= 100 && enrollment.Status == courseModels.EnrollmentActive {
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &nowTime
		courseCompleted = true
	}

	return courseCompleted, tx.Save(enrollment).Error
}

// RecordChapterProgress records a learner's status on one chapter and
// recomputes the enrollment's aggregate progress. targetUserID selects whose
// enrollment is updated; zero means the actor's own. Both writes happen in one
// transaction so progress and enrollment never drift.
func RecordChapterProgress(db *gorm.DB, actor Identity, targetUserID, chapterID uint, status string, position *string) (*ChapterProgressResult, error) {
	if !validProgressStatus(status) {
		return nil, InvalidArgument("Invalid status parameter!")
	}

	var pos *uint
	if position != nil {
		parsed, err := strconv.Atoi(*position)
		if err != nil || parsed < 0 {
			return nil, InvalidArgument("Position must be a non-negative integer!")
		}
		p := uint(parsed)
		pos = &p
	}

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return nil, NotFound("Chapter not found!")
	}

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", chapter.CourseID, false).First(&crs).Error; err != nil {
		return nil, NotFound("Course not found!")
	}

	if targetUserID == 0 {
		targetUserID = actor.UserID
	}
	if targetUserID != actor.UserID && !actor.IsAdmin() && crs.InstructorID != actor.UserID {
		return nil, PermissionDenied("You do not have permission to update this enrollment!")
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", targetUserID, crs.ID, false).
		First(&enrollment).Error; err != nil {
		if targetUserID == actor.UserID {
			return nil, PermissionDenied("You must be enrolled in this course!")
		}
		return nil, NotFound("Enrollment not found!")
	}

	courseCompleted := false
	chapterNewlyCompleted := false
	nowTime := time.Now()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	prog, _, err := findOrCreateProgress(tx, enrollment.ID, chapter.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	oldStatus := prog.Status
	prog.Status = status

	// Timestamps are set only on the first transition; re-entering a status
	// leaves them untouched.
	if status == courseModels.ProgressInProgress && oldStatus == courseModels.ProgressNotStarted {
		prog.StartedAt = &nowTime
	}
	if status == courseModels.ProgressCompleted && oldStatus != courseModels.ProgressCompleted {
		prog.CompletedAt = &nowTime
		chapterNewlyCompleted = true
	}

	// Position overwrites unconditionally, last write wins.
	if pos != nil {
		prog.Position = *pos
	}
	prog.LastAccessed = nowTime

	if err := tx.Save(prog).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	courseCompleted, err = recomputeEnrollmentProgress(tx, &enrollment, crs.ID, nowTime)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if chapterNewlyCompleted {
		RecordActivity(db, targetUserID, models.ActionCompleteChapter, &crs.ID, map[string]interface{}{
			"chapter_id":    chapter.ID,
			"chapter_title": chapter.Title,
		})
	}

	if courseCompleted {
		RecordActivity(db, targetUserID, models.ActionCompleteCourse, &crs.ID, map[string]interface{}{
			"course_title": crs.Title,
		})

		var learner models.User
		if err := db.Where("id = ?", targetUserID).First(&learner).Error; err == nil {
			go func(email, name, title string) {
				if err := utils.SendCompletionEmail(email, name, title); err != nil {
					log.Printf("Error sending completion email: %v", err)
				}
			}(learner.Email, learner.Username, crs.Title)
		}
	}

	return &ChapterProgressResult{
		Progress:        prog,
		Enrollment:      &enrollment,
		CourseCompleted: courseCompleted,
	}, nil
}

// ListEnrollmentProgress returns all per-chapter records for one enrollment.
// Visible to the enrollment owner, the course instructor and admins.
func ListEnrollmentProgress(db *gorm.DB, actor Identity, enrollmentID uint) ([]courseModels.Progress, error) {
	var enrollment courseModels.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return nil, NotFound("Enrollment not found!")
	}

	if enrollment.UserID != actor.UserID && !actor.IsAdmin() {
		var crs courseModels.Course
		if err := db.Where("id = ?", enrollment.CourseID).First(&crs).Error; err != nil || crs.InstructorID != actor.UserID {
			return nil, PermissionDenied("You do not have permission to view this enrollment!")
		}
	}

	var records []courseModels.Progress
	if err := db.Where("enrollment_id = ?", enrollment.ID).Order("chapter_id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
