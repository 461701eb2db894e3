package analyticsController

import (
	"lms/database"
	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

func StartSession(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedStartSession").(*struct {
		CourseID  *uint `json:"course_id"`
		ChapterID *uint `json:"chapter_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	session, err := services.StartSession(database.Database.Db, actor, reqData.CourseID, reqData.ChapterID,
		ip, c.Get("User-Agent"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session started successfully!", session)
}

func EndSession(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session ID!", nil)
	}

	result, svcErr := services.CloseSession(database.Database.Db, actor, uint(sessionID))
	if svcErr != nil {
		return middleware.ServiceErrorResponse(c, svcErr)
	}

	response := map[string]interface{}{
		"session": result.Session,
	}
	if result.Metric != nil {
		response["metric"] = result.Metric
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session ended successfully!", response)
}

func ListActivities(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	activities := services.RecentActivities(database.Database.Db, actor.UserID, limit)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activities fetched successfully!", activities)
}
