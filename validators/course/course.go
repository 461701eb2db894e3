package courseValidator

import (
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

var validLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if len(reqData.Name) < 2 || len(reqData.Name) > 100 {
			errors["name"] = "Category name must be between 2 and 100 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCategory", reqData)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			CategoryID  *uint   `json:"category_id"`
			Level       string  `json:"level"`
			Price       float64 `json:"price"`
			IsPublished bool    `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if len(reqData.Title) < 3 || len(reqData.Title) > 200 {
			errors["title"] = "Title must be between 3 and 200 characters!"
		}

		if reqData.Level == "" {
			reqData.Level = "beginner"
		}
		if !validLevels[reqData.Level] {
			errors["level"] = "Level must be beginner, intermediate or advanced!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"course_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  uint   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if len(reqData.Title) < 3 || len(reqData.Title) > 200 {
			errors["title"] = "Title must be between 3 and 200 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateModule", reqData)
		return c.Next()
	}
}

func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID        uint                   `json:"module_id"`
			Title           string                 `json:"title"`
			ContentType     string                 `json:"content_type"`
			Content         map[string]interface{} `json:"content"`
			OrderIndex      uint                   `json:"order_index"`
			IsFree          bool                   `json:"is_free"`
			DurationSeconds uint                   `json:"duration_seconds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ModuleID == 0 {
			errors["module_id"] = "Module ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if len(reqData.Title) < 3 || len(reqData.Title) > 200 {
			errors["title"] = "Title must be between 3 and 200 characters!"
		}

		switch reqData.ContentType {
		case courseModels.ContentVideo, courseModels.ContentQuiz, courseModels.ContentReading, courseModels.ContentAssignment:
		default:
			errors["content_type"] = "Content type must be video, quiz, reading or assignment!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateChapter", reqData)
		return c.Next()
	}
}

func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id"`
			Rating   int    `json:"rating"`
			Comment  string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if len(reqData.Comment) > 2000 {
			errors["comment"] = "Comment cannot exceed 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddReview", reqData)
		return c.Next()
	}
}

func MarkProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ChapterID uint    `json:"chapter_id"`
			Status    string  `json:"status"`
			Position  *string `json:"position"`
			UserID    *uint   `json:"user_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ChapterID == 0 {
			errors["chapter_id"] = "Chapter ID is required!"
		}
		if reqData.Status == "" {
			errors["status"] = "Status is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMarkProgress", reqData)
		return c.Next()
	}
}
