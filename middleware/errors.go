package middleware

import (
	courseService "elearn/services/course"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ServiceError translates a business-rule error kind from the service layer
// into the HTTP envelope. Every kind keeps a distinct message so callers can
// surface it; only storage failures collapse to a generic 500.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, courseService.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	case errors.Is(err, courseService.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not own this resource!", nil)
	case errors.Is(err, courseService.ErrInvalidState):
		return JsonResponse(c, fiber.StatusConflict, false, "Course is not in a reviewable state!", nil)
	case errors.Is(err, courseService.ErrNotApproved):
		return JsonResponse(c, fiber.StatusConflict, false, "Course is not approved yet!", nil)
	case errors.Is(err, courseService.ErrNotEligible):
		return JsonResponse(c, fiber.StatusConflict, false, "Learner has not reached the completion threshold!", nil)
	case errors.Is(err, courseService.ErrAlreadyIssued):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued for this learner and course!", nil)
	default:
		log.Printf("Service error: %v", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please retry!", nil)
	}
}
