package services

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordChapterProgress_CreatesAndCompletes(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "alice", "student")
	crs := createCourse(t, db, instructor.ID, "go-basics")
	chapters := createChapters(t, db, crs.ID, 4)
	enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	result, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, courseModels.ProgressInProgress, result.Progress.Status)
	assert.NotNil(t, result.Progress.StartedAt)
	assert.Nil(t, result.Progress.CompletedAt)
	assert.Equal(t, 0.0, result.Enrollment.Progress)

	result, err = RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Progress.CompletedAt)
	assert.Equal(t, 25.0, result.Enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentActive, result.Enrollment.Status)
	assert.False(t, result.CourseCompleted)
}

func TestRecordChapterProgress_CompletingAllChaptersCompletesCourse(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "bob", "student")
	crs := createCourse(t, db, instructor.ID, "go-advanced")
	chapters := createChapters(t, db, crs.ID, 3)
	enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	for i, chapter := range chapters {
		result, err := RecordChapterProgress(db, actor, 0, chapter.ID, courseModels.ProgressCompleted, nil)
		require.NoError(t, err)

		if i < len(chapters)-1 {
			assert.False(t, result.CourseCompleted)
			assert.Equal(t, courseModels.EnrollmentActive, result.Enrollment.Status)
		} else {
			assert.True(t, result.CourseCompleted)
			assert.Equal(t, courseModels.EnrollmentCompleted, result.Enrollment.Status)
			assert.Equal(t, 100.0, result.Enrollment.Progress)
			assert.NotNil(t, result.Enrollment.CompletedAt)
		}
	}
}

func TestRecordChapterProgress_CompletionTimestampIsStable(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "carol", "student")
	crs := createCourse(t, db, instructor.ID, "stability")
	chapters := createChapters(t, db, crs.ID, 1)
	enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	first, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)
	require.NotNil(t, first.Progress.CompletedAt)
	firstCompletedAt := *first.Progress.CompletedAt
	require.NotNil(t, first.Enrollment.CompletedAt)
	firstCourseDone := *first.Enrollment.CompletedAt

	// Re-completing the same chapter must not move either timestamp.
	second, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, firstCompletedAt.Unix(), second.Progress.CompletedAt.Unix())
	assert.False(t, second.CourseCompleted)
	assert.Equal(t, courseModels.EnrollmentCompleted, second.Enrollment.Status)
	assert.Equal(t, firstCourseDone.Unix(), second.Enrollment.CompletedAt.Unix())
}

func TestRecordChapterProgress_PositionLastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "dave", "student")
	crs := createCourse(t, db, instructor.ID, "positions")
	chapters := createChapters(t, db, crs.ID, 1)
	enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	pos := "120"
	result, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressInProgress, &pos)
	require.NoError(t, err)
	assert.Equal(t, uint(120), result.Progress.Position)

	pos = "30"
	result, err = RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressInProgress, &pos)
	require.NoError(t, err)
	assert.Equal(t, uint(30), result.Progress.Position)

	// Omitting position keeps the previous value.
	result, err = RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(30), result.Progress.Position)
}

func TestRecomputeEnrollmentProgress_NoChaptersLeavesEnrollmentUntouched(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "gina", "student")
	crs := createCourse(t, db, instructor.ID, "empty-course")
	enrollment := enroll(t, db, student.ID, crs.ID)
	require.NoError(t, db.Model(&enrollment).Update("progress", 40.0).Error)
	enrollment.Progress = 40.0

	completed, err := recomputeEnrollmentProgress(db, &enrollment, crs.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, completed)

	var reloaded courseModels.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, 40.0, reloaded.Progress)
	assert.Equal(t, courseModels.EnrollmentActive, reloaded.Status)
	assert.Nil(t, reloaded.CompletedAt)
}

func TestRecordChapterProgress_DeletedChaptersDoNotMoveProgress(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "hugo", "student")
	crs := createCourse(t, db, instructor.ID, "shrinking")
	chapters := createChapters(t, db, crs.ID, 2)
	enrollment := enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	_, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)

	// Retire every chapter; further progress events must fail without
	// touching the enrollment.
	require.NoError(t, db.Model(&courseModels.Chapter{}).Where("course_id = ?", crs.ID).
		Update("is_deleted", true).Error)

	_, err = RecordChapterProgress(db, actor, 0, chapters[1].ID, courseModels.ProgressCompleted, nil)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)

	var reloaded courseModels.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, 50.0, reloaded.Progress)
	assert.Equal(t, courseModels.EnrollmentActive, reloaded.Status)
}

func TestRecordChapterProgress_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "erin", "student")
	crs := createCourse(t, db, instructor.ID, "validation")
	chapters := createChapters(t, db, crs.ID, 1)
	enroll(t, db, student.ID, crs.ID)

	actor := studentIdentity(student)

	_, err := RecordChapterProgress(db, actor, 0, chapters[0].ID, "finished", nil)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	bad := "-5"
	_, err = RecordChapterProgress(db, actor, 0, chapters[0].ID, courseModels.ProgressInProgress, &bad)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	_, err = RecordChapterProgress(db, actor, 0, 9999, courseModels.ProgressInProgress, nil)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestRecordChapterProgress_Permissions(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "frank", "student")
	other := createUser(t, db, "grace", "student")
	admin := createUser(t, db, "root", "admin")
	crs := createCourse(t, db, instructor.ID, "perms")
	chapters := createChapters(t, db, crs.ID, 2)
	enroll(t, db, student.ID, crs.ID)

	// A student cannot write another learner's progress.
	_, err := RecordChapterProgress(db, studentIdentity(other), student.ID, chapters[0].ID, courseModels.ProgressCompleted, nil)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)

	// Not enrolled: denied, not "not found".
	_, err = RecordChapterProgress(db, studentIdentity(other), 0, chapters[0].ID, courseModels.ProgressInProgress, nil)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)

	// The course instructor can grade an enrolled learner.
	_, err = RecordChapterProgress(db, studentIdentity(instructor), student.ID, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)

	// Admins too.
	_, err = RecordChapterProgress(db, studentIdentity(admin), student.ID, chapters[1].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)
}

func TestListEnrollmentProgress_OwnerAndGates(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "henry", "student")
	other := createUser(t, db, "iris", "student")
	crs := createCourse(t, db, instructor.ID, "listing")
	chapters := createChapters(t, db, crs.ID, 2)
	enrollment := enroll(t, db, student.ID, crs.ID)

	_, err := RecordChapterProgress(db, studentIdentity(student), 0, chapters[0].ID, courseModels.ProgressCompleted, nil)
	require.NoError(t, err)

	records, err := ListEnrollmentProgress(db, studentIdentity(student), enrollment.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, courseModels.ProgressCompleted, records[0].Status)

	_, err = ListEnrollmentProgress(db, studentIdentity(other), enrollment.ID)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)

	_, err = ListEnrollmentProgress(db, studentIdentity(instructor), enrollment.ID)
	require.NoError(t, err)
}
