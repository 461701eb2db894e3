package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment, progress and review routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog. Static paths registered before /:id so they are not captured
	// as course IDs.
	courseGroup.Get("/list", controllers.ListCourses)
	courseGroup.Get("/categories", controllers.ListCategories)
	courseGroup.Get("/enrollments/list", middleware.JWTMiddleware, controllers.GetEnrollments)
	courseGroup.Get("/enrollment/:id/progress", middleware.JWTMiddleware, controllers.GetEnrollmentProgress)
	courseGroup.Get("/:id/reviews", controllers.ListReviews)
	courseGroup.Get("/:id", controllers.CourseDetails)

	// Course management
	courseGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/category", middleware.JWTMiddleware, validators.CreateCategory(), controllers.CreateCategory)
	courseGroup.Post("/module", middleware.JWTMiddleware, validators.CreateModule(), controllers.CreateModule)
	courseGroup.Post("/chapter", middleware.JWTMiddleware, validators.CreateChapter(), controllers.CreateChapter)
	courseGroup.Post("/:id/publish", middleware.JWTMiddleware, controllers.PublishCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, controllers.DeleteCourse)

	// Enrollment & Progress
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, controllers.EnrollInCourse)
	courseGroup.Post("/progress", middleware.JWTMiddleware, validators.MarkProgress(), controllers.MarkChapterProgress)

	// Reviews
	courseGroup.Post("/review", middleware.JWTMiddleware, validators.AddReview(), controllers.AddReview)
}
