package analyticsRoutes

import (
	controllers "lms/controllers/analytics"
	"lms/middleware"
	validators "lms/validators/analytics"

	"github.com/gofiber/fiber/v2"
)

// SetupAnalyticsRoutes sets up session, dashboard and chatbot routes
func SetupAnalyticsRoutes(app *fiber.App) {
	sessionGroup := app.Group("/session")
	sessionGroup.Post("/start", middleware.JWTMiddleware, validators.StartSession(), controllers.StartSession)
	sessionGroup.Post("/:id/end", middleware.JWTMiddleware, controllers.EndSession)

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Get("/admin", middleware.JWTMiddleware, controllers.AdminDashboard)
	dashboardGroup.Get("/user", middleware.JWTMiddleware, controllers.UserDashboard)
	dashboardGroup.Get("/course/:id", middleware.JWTMiddleware, controllers.CourseDashboard)
	dashboardGroup.Get("/activities", middleware.JWTMiddleware, controllers.ListActivities)

	chatbotGroup := app.Group("/chatbot")
	chatbotGroup.Post("/ask", middleware.JWTMiddleware, validators.AskChatbot(), controllers.AskChatbot)
	chatbotGroup.Post("/:id/feedback", middleware.JWTMiddleware, controllers.ChatbotFeedback)
	chatbotGroup.Get("/history", middleware.JWTMiddleware, controllers.ChatbotHistory)
}
