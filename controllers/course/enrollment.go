package courseController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	// Check if user exists
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", actor.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	// Check if course exists and is published
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.UserID, crs.ID, false).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     actor.UserID,
		CourseID:   crs.ID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	services.RecordActivity(db, actor.UserID, models.ActionEnrollCourse, &crs.ID, map[string]interface{}{
		"course_title": crs.Title,
	})
	utils.SendEnrollmentEmail(user.Email, user.Username, crs.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", actor.UserID, false)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

func GetEnrollmentProgress(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := c.ParamsInt("id")
	if err != nil || enrollmentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
	}

	records, svcErr := services.ListEnrollmentProgress(database.Database.Db, actor, uint(enrollmentID))
	if svcErr != nil {
		return middleware.ServiceErrorResponse(c, svcErr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", records)
}

func MarkChapterProgress(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMarkProgress").(*struct {
		ChapterID uint    `json:"chapter_id"`
		Status    string  `json:"status"`
		Position  *string `json:"position"`
		UserID    *uint   `json:"user_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	targetUserID := actor.UserID
	if reqData.UserID != nil {
		targetUserID = *reqData.UserID
	}

	result, err := services.RecordChapterProgress(database.Database.Db, actor, targetUserID,
		reqData.ChapterID, reqData.Status, reqData.Position)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	response := map[string]interface{}{
		"progress":         result.Progress,
		"enrollment":       result.Enrollment,
		"course_completed": result.CourseCompleted,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", response)
}
