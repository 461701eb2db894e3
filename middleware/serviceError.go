package middleware

import (
	"log"

	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps service layer errors onto the response envelope.
// Unknown errors are logged and reported as a generic failure.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	if svcErr, ok := services.AsError(err); ok {
		return JsonResponse(c, svcErr.HTTPStatus(), false, svcErr.Message, nil)
	}
	log.Printf("Unexpected service error: %v", err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// CurrentIdentity rebuilds the caller identity stored by JWTMiddleware.
func CurrentIdentity(c *fiber.Ctx) (services.Identity, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return services.Identity{}, false
	}
	role, _ := c.Locals("userRole").(string)
	return services.Identity{UserID: userID, Role: role}, true
}
