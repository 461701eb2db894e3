package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func ListCourses(c *fiber.Ctx) error {
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

	query := db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", category)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

func CourseDetails(c *fiber.Ctx) error {
	db := database.Database.Db

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).Order("order_index asc").Find(&modules)

	type moduleWithChapters struct {
		courseModels.Module
		Chapters []courseModels.Chapter `json:"chapters"`
	}

	outline := make([]moduleWithChapters, 0, len(modules))
	for _, m := range modules {
		var chapters []courseModels.Chapter
		db.Where("module_id = ? AND is_deleted = ?", m.ID, false).Order("order_index asc").Find(&chapters)
		outline = append(outline, moduleWithChapters{Module: m, Chapters: chapters})
	}

	isEnrolled := false
	var enrollment courseModels.Enrollment
	if actor, ok := middleware.CurrentIdentity(c); ok {
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.UserID, crs.ID, false).
			First(&enrollment).Error; err == nil {
			isEnrolled = true
		}
	}

	var avgRating *float64
	db.Model(&courseModels.Review{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).
		Select("AVG(rating)").Scan(&avgRating)

	response := map[string]interface{}{
		"course":      crs,
		"modules":     outline,
		"is_enrolled": isEnrolled,
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}
	if avgRating != nil {
		response["average_rating"] = *avgRating
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}

func ListCategories(c *fiber.Ctx) error {
	var categories []courseModels.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}
