package analyticsController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	chatCache     *utils.TTLCache
	chatCompleter services.Completer
	chatCacheTTL  time.Duration
)

// InitChatbot wires the shared answer cache, the completion backend and how
// long answers stay cached.
func InitChatbot(cache *utils.TTLCache, completer services.Completer, ttl time.Duration) {
	chatCache = cache
	chatCompleter = completer
	chatCacheTTL = ttl
}

func AskChatbot(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if chatCache == nil || chatCompleter == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Chatbot is not configured!", nil)
	}

	reqData, ok := c.Locals("validatedAskChatbot").(*struct {
		Question string `json:"question"`
		CourseID *uint  `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	answer, err := services.Ask(database.Database.Db, chatCache, chatCompleter, actor, reqData.Question, reqData.CourseID, chatCacheTTL)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	response := map[string]interface{}{
		"interaction": answer.Interaction,
		"source":      answer.Source,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question answered successfully!", response)
}

func ChatbotFeedback(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	interactionID, err := c.ParamsInt("id")
	if err != nil || interactionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid interaction ID!", nil)
	}

	reqData := new(struct {
		Rating int `json:"rating"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	interaction, svcErr := services.SubmitFeedback(database.Database.Db, actor, uint(interactionID), reqData.Rating)
	if svcErr != nil {
		return middleware.ServiceErrorResponse(c, svcErr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback recorded successfully!", interaction)
}

func ChatbotHistory(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetUserID := uint(c.QueryInt("user_id", 0))
	limit := c.QueryInt("limit", 20)

	interactions, err := services.RecentInteractions(database.Database.Db, actor, targetUserID, limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interactions fetched successfully!", interactions)
}
