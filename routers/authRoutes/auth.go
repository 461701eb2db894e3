package authRoutes

import (
	controllers "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", controllers.Login)
	authGroup.Post("/logout", middleware.JWTMiddleware, controllers.Logout)
	authGroup.Get("/profile", middleware.JWTMiddleware, controllers.Profile)
}
