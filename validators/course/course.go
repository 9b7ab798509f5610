package courseValidator

import (
	"elearn/middleware"
	courseModels "elearn/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// paramID validates a positive integer route parameter and stores it in
// c.Locals under the given key
func paramID(c *fiber.Ctx, param, localKey string) (int, error) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, param+" is required!", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(localKey, id)
	return id, nil
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "courseID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// CourseList validates optional pagination for the catalog
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
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

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// MarkStepComplete validates :course_id and :step_index route parameters.
// Step indexes are 0-based so zero is allowed.
func MarkStepComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "course_id", "courseID"); err != nil {
			return err
		}

		raw := strings.TrimSpace(c.Params("step_index"))
		stepIndex, err := strconv.Atoi(raw)
		if err != nil || stepIndex < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step index!", nil)
		}

		c.Locals("stepIndex", stepIndex)
		return c.Next()
	}
}

// GetCourseProgress validates the :course_id route parameter
func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "course_id", "courseID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// validContentTypes for step payloads
var validContentTypes = map[string]bool{
	courseModels.ContentText:     true,
	courseModels.ContentVideo:    true,
	courseModels.ContentAudio:    true,
	courseModels.ContentImage:    true,
	courseModels.ContentDocument: true,
}

func validateContentType(contentType string) bool {
	if contentType == "" {
		return true // defaults to TEXT
	}
	return validContentTypes[contentType]
}
