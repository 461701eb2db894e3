package courseController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

func AddReview(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAddReview").(*struct {
		CourseID uint   `json:"course_id"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Only enrolled learners can leave a review
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.UserID, crs.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in this course to review it!", nil)
	}

	var existing courseModels.Review
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.UserID, crs.ID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := courseModels.Review{
		UserID:   actor.UserID,
		CourseID: crs.ID,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error creating review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	services.RecordActivity(db, actor.UserID, models.ActionReview, &crs.ID, map[string]interface{}{
		"rating": reqData.Rating,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

func ListReviews(c *fiber.Ctx) error {
	db := database.Database.Db

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&courseModels.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	query.Count(&total)

	var reviews []courseModels.Review
	if err := query.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	var avgRating *float64
	db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("AVG(rating)").Scan(&avgRating)

	response := map[string]interface{}{
		"reviews": reviews,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	if avgRating != nil {
		response["average_rating"] = *avgRating
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", response)
}
