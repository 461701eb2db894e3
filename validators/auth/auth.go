package authValidator

import (
	"regexp"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(reqData.Username)
		if len(reqData.Username) < 3 || len(reqData.Username) > 30 {
			errors["username"] = "Username must be between 3 and 30 characters!"
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Invalid email address!"
		}

		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters!"
		}

		if reqData.Role != "" && reqData.Role != models.RoleStudent && reqData.Role != models.RoleInstructor {
			errors["role"] = "Role must be student or instructor!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}
