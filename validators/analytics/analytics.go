package analyticsValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func StartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  *uint `json:"course_id"`
			ChapterID *uint `json:"chapter_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID != nil && *reqData.CourseID == 0 {
			errors["course_id"] = "Invalid course ID!"
		}
		if reqData.ChapterID != nil && *reqData.ChapterID == 0 {
			errors["chapter_id"] = "Invalid chapter ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStartSession", reqData)
		return c.Next()
	}
}

func AskChatbot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question string `json:"question"`
			CourseID *uint  `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Question = strings.TrimSpace(reqData.Question)
		if reqData.Question == "" {
			errors["question"] = "Question is required!"
		}
		if len(reqData.Question) > 2000 {
			errors["question"] = "Question cannot exceed 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAskChatbot", reqData)
		return c.Next()
	}
}
