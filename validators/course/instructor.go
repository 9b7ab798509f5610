package courseValidator

import (
	"elearn/middleware"
	"strings"

	controllers "elearn/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// CourseBody validates the create/update payload. forCreate requires a
// title; updates may send partial fields.
func CourseBody(forCreate bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if forCreate && (reqData.Title == nil || len(strings.TrimSpace(*reqData.Title)) < 3) {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if !forCreate && reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		for _, step := range reqData.Steps {
			if strings.TrimSpace(step.Title) == "" {
				errors["steps"] = "Every step needs a title!"
				break
			}
			if !validateContentType(step.ContentType) {
				errors["steps"] = "Step content type must be TEXT, VIDEO, AUDIO, IMAGE or DOCUMENT!"
				break
			}
			if step.DurationMinutes < 0 {
				errors["steps"] = "Step duration cannot be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// LearnerList validates the :id parameter plus optional roster pagination
func LearnerList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLearnerList", reqData)
		return c.Next()
	}
}
