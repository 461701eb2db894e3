package services

import (
	"os"
	"testing"
	"time"

	"lms/config"
	"lms/models"
	analyticsModels "lms/models/analytics"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestMain mirrors the config bootstrap main.go performs so code that reads
// config.AppConfig (e.g. the email sender) does not nil-deref during tests.
func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.UserActivity{},
		&courseModels.Category{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Chapter{},
		&courseModels.Enrollment{},
		&courseModels.Progress{},
		&courseModels.Review{},
		&analyticsModels.LearningMetric{},
		&analyticsModels.SessionData{},
		&analyticsModels.ChatbotInteraction{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, title string) courseModels.Course {
	t.Helper()
	crs := courseModels.Course{
		Title:        title,
		Slug:         title,
		InstructorID: instructorID,
		Level:        "beginner",
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

// createChapters builds one module with n chapters and returns the chapters.
func createChapters(t *testing.T, db *gorm.DB, courseID uint, n int) []courseModels.Chapter {
	t.Helper()
	module := courseModels.Module{CourseID: courseID, Title: "Module 1", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	chapters := make([]courseModels.Chapter, 0, n)
	for i := 0; i < n; i++ {
		chapter := courseModels.Chapter{
			ModuleID:        module.ID,
			CourseID:        courseID,
			Title:           "Chapter",
			ContentType:     courseModels.ContentVideo,
			OrderIndex:      uint(i + 1),
			DurationSeconds: 300,
		}
		require.NoError(t, db.Create(&chapter).Error)
		chapters = append(chapters, chapter)
	}
	return chapters
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

func studentIdentity(user models.User) Identity {
	return Identity{UserID: user.ID, Role: user.Role}
}
