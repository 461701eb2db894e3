package analyticsController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

func trailingWindow(c *fiber.Ctx) int {
	days := c.QueryInt("days", config.AppConfig.DashboardWindowDays)
	if days < 1 || days > 365 {
		days = config.AppConfig.DashboardWindowDays
	}
	return days
}

func AdminDashboard(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stats, err := services.AdminDashboardStats(database.Database.Db, actor, trailingWindow(c))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", stats)
}

func UserDashboard(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Admins may pass ?user_id= to inspect another learner.
	targetUserID := uint(c.QueryInt("user_id", 0))

	stats, err := services.UserStats(database.Database.Db, actor, targetUserID, trailingWindow(c))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User stats fetched successfully!", stats)
}

func CourseDashboard(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	stats, svcErr := services.CourseStats(database.Database.Db, actor, uint(courseID), trailingWindow(c))
	if svcErr != nil {
		return middleware.ServiceErrorResponse(c, svcErr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course stats fetched successfully!", stats)
}
