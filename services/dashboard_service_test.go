package services

import (
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningStreak_BreaksOnGap(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "alice", "student")

	today := time.Now()
	for _, daysAgo := range []int{0, 1, 2, 5} {
		activity := models.UserActivity{
			UserID:    student.ID,
			Action:    models.ActionViewCourse,
			Timestamp: today.AddDate(0, 0, -daysAgo),
		}
		require.NoError(t, db.Create(&activity).Error)
	}

	streak := learningStreak(db, student.ID)
	assert.Equal(t, 3, streak)
}

func TestLearningStreak_LongerThanDashboardWindow(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "dora", "student")

	today := time.Now()
	for daysAgo := 0; daysAgo < 45; daysAgo++ {
		activity := models.UserActivity{
			UserID:    student.ID,
			Action:    models.ActionViewCourse,
			Timestamp: today.AddDate(0, 0, -daysAgo),
		}
		require.NoError(t, db.Create(&activity).Error)
	}

	// The streak walks the full history, not just the 30-day stats window.
	assert.Equal(t, 45, learningStreak(db, student.ID))
}

func TestLearningStreak_NoActivityToday(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "bob", "student")

	// Latest activity yesterday still counts; the walk tolerates one day.
	today := time.Now()
	for _, daysAgo := range []int{1, 2} {
		activity := models.UserActivity{
			UserID:    student.ID,
			Action:    models.ActionViewCourse,
			Timestamp: today.AddDate(0, 0, -daysAgo),
		}
		require.NoError(t, db.Create(&activity).Error)
	}

	assert.Equal(t, 2, learningStreak(db, student.ID))
}

func TestLearningStreak_Empty(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "carol", "student")
	assert.Equal(t, 0, learningStreak(db, student.ID))
}

func TestProgressHistogram_FixedBuckets(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	crs := createCourse(t, db, instructor.ID, "histogram")

	for i, progress := range []float64{0, 25, 26, 60, 100} {
		student := createUser(t, db, "student"+string(rune('a'+i)), "student")
		enrollment := enroll(t, db, student.ID, crs.ID)
		require.NoError(t, db.Model(&enrollment).Update("progress", progress).Error)
	}

	histogram := progressHistogram(db, crs.ID)
	require.Len(t, histogram, 5)

	expected := map[string]int64{"0-25": 2, "26-50": 1, "51-75": 1, "76-99": 0, "100": 1}
	for _, bucket := range histogram {
		assert.Equal(t, expected[bucket.Range], bucket.Count, "bucket %s", bucket.Range)
	}
	// Bucket order is fixed regardless of counts.
	assert.Equal(t, "0-25", histogram[0].Range)
	assert.Equal(t, "100", histogram[4].Range)
}

func TestAdminDashboardStats_AdminOnly(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "alice", "student")

	_, err := AdminDashboardStats(db, studentIdentity(student), 30)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)
}

func TestAdminDashboardStats_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "root", "admin")
	instructor := createUser(t, db, "teach", "instructor")
	s1 := createUser(t, db, "alice", "student")
	s2 := createUser(t, db, "bob", "student")
	crs := createCourse(t, db, instructor.ID, "aggregate")

	e1 := enroll(t, db, s1.ID, crs.ID)
	enroll(t, db, s2.ID, crs.ID)
	require.NoError(t, db.Model(&e1).Updates(map[string]interface{}{
		"status": courseModels.EnrollmentCompleted, "progress": 100.0,
	}).Error)

	stats, err := AdminDashboardStats(db, studentIdentity(admin), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalCourses)
	assert.Equal(t, int64(2), stats.TotalEnrollments)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.01)
	assert.Equal(t, int64(2), stats.UserRoles["student"])
	assert.Equal(t, int64(1), stats.UserRoles["admin"])
	require.Len(t, stats.PopularCourses, 1)
	assert.Equal(t, int64(2), stats.PopularCourses[0].EnrollmentCount)
}

func TestUserStats_OwnAndForeign(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "alice", "student")
	other := createUser(t, db, "bob", "student")
	admin := createUser(t, db, "root", "admin")

	crs1 := createCourse(t, db, instructor.ID, "one")
	crs2 := createCourse(t, db, instructor.ID, "two")

	e1 := enroll(t, db, student.ID, crs1.ID)
	e2 := enroll(t, db, student.ID, crs2.ID)
	require.NoError(t, db.Model(&e1).Updates(map[string]interface{}{
		"status": courseModels.EnrollmentCompleted, "progress": 100.0,
	}).Error)
	require.NoError(t, db.Model(&e2).Update("progress", 50.0).Error)

	stats, err := UserStats(db, studentIdentity(student), 0, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.EnrolledCourses)
	assert.Equal(t, int64(1), stats.CompletedCourses)
	assert.InDelta(t, 75.0, stats.AverageProgress, 0.01)
	assert.Len(t, stats.CourseProgress, 2)

	// Another student may not peek.
	_, err = UserStats(db, studentIdentity(other), student.ID, 30)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)

	// Admins may.
	_, err = UserStats(db, studentIdentity(admin), student.ID, 30)
	require.NoError(t, err)
}

func TestCourseStats_RatingsAndCompletion(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	s1 := createUser(t, db, "alice", "student")
	s2 := createUser(t, db, "bob", "student")
	outsider := createUser(t, db, "carol", "student")
	crs := createCourse(t, db, instructor.ID, "rated")

	e1 := enroll(t, db, s1.ID, crs.ID)
	enroll(t, db, s2.ID, crs.ID)
	require.NoError(t, db.Model(&e1).Updates(map[string]interface{}{
		"status": courseModels.EnrollmentCompleted, "progress": 100.0,
	}).Error)

	require.NoError(t, db.Create(&courseModels.Review{UserID: s1.ID, CourseID: crs.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&courseModels.Review{UserID: s2.ID, CourseID: crs.ID, Rating: 3}).Error)

	stats, err := CourseStats(db, studentIdentity(instructor), crs.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEnrollments)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.01)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.01)
	assert.Equal(t, int64(1), stats.RatingsDistribution["5"])
	assert.Equal(t, int64(1), stats.RatingsDistribution["3"])

	// Read access is gated: enrolled learners can view, outsiders cannot.
	_, err = CourseStats(db, studentIdentity(s2), crs.ID, 30)
	require.NoError(t, err)

	_, err = CourseStats(db, studentIdentity(outsider), crs.ID, 30)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)
}
