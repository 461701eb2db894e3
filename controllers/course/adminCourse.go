package courseController

import (
	"encoding/json"
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func CreateCategory(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if !actor.IsAdmin() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedCreateCategory").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	slug := utils.Slugify(reqData.Name)
	if err := db.Where("slug = ?", slug).First(&courseModels.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := courseModels.Category{
		Name:        reqData.Name,
		Slug:        slug,
		Description: reqData.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func CreateCourse(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if !actor.IsAdmin() && !actor.IsInstructor() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can create courses!", nil)
	}

	reqData, ok := c.Locals("validatedCreateCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		CategoryID  *uint   `json:"category_id"`
		Level       string  `json:"level"`
		Price       float64 `json:"price"`
		IsPublished bool    `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if reqData.CategoryID != nil {
		if err := db.Where("id = ?", *reqData.CategoryID).First(&courseModels.Category{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
	}

	slug := utils.Slugify(reqData.Title)
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&courseModels.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this title already exists!", nil)
	}

	crs := courseModels.Course{
		Title:        reqData.Title,
		Slug:         slug,
		Description:  reqData.Description,
		InstructorID: actor.UserID,
		CategoryID:   reqData.CategoryID,
		Level:        reqData.Level,
		Price:        reqData.Price,
		IsPublished:  reqData.IsPublished,
	}
	if err := db.Create(&crs).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// requireWriteAccess loads the course and checks the caller can modify it.
func requireWriteAccess(c *fiber.Ctx, courseID uint) (*courseModels.Course, error) {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !services.ResolveCapabilities(db, actor, &crs).Has(services.CapWrite) {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}
	return &crs, nil
}

func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateModule").(*struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  uint   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	crs, errResp := requireWriteAccess(c, reqData.CourseID)
	if crs == nil {
		return errResp
	}

	module := courseModels.Module{
		CourseID:    crs.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func CreateChapter(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateChapter").(*struct {
		ModuleID        uint                   `json:"module_id"`
		Title           string                 `json:"title"`
		ContentType     string                 `json:"content_type"`
		Content         map[string]interface{} `json:"content"`
		OrderIndex      uint                   `json:"order_index"`
		IsFree          bool                   `json:"is_free"`
		DurationSeconds uint                   `json:"duration_seconds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	crs, errResp := requireWriteAccess(c, module.CourseID)
	if crs == nil {
		return errResp
	}

	var content datatypes.JSON
	if reqData.Content != nil {
		raw, err := json.Marshal(reqData.Content)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter content!", nil)
		}
		content = datatypes.JSON(raw)
	}

	chapter := courseModels.Chapter{
		ModuleID:        module.ID,
		CourseID:        crs.ID,
		Title:           reqData.Title,
		ContentType:     reqData.ContentType,
		Content:         content,
		OrderIndex:      reqData.OrderIndex,
		IsFree:          reqData.IsFree,
		DurationSeconds: reqData.DurationSeconds,
	}
	if err := db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

func PublishCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	crs, errResp := requireWriteAccess(c, uint(courseID))
	if crs == nil {
		return errResp
	}

	crs.IsPublished = true
	if err := database.Database.Db.Save(crs).Error; err != nil {
		log.Printf("Error publishing course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", crs)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	crs, errResp := requireWriteAccess(c, uint(courseID))
	if crs == nil {
		return errResp
	}

	crs.IsDeleted = true
	if err := database.Database.Db.Save(crs).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
