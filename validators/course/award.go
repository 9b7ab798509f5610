package courseValidator

import (
	"elearn/middleware"
	courseModels "elearn/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validBadgeLevels = map[string]bool{
	courseModels.BadgeBronze:  true,
	courseModels.BadgeSilver:  true,
	courseModels.BadgeGold:    true,
	courseModels.BadgePlatine: true,
}

// AwardBadge validates course/learner route parameters and the badge payload
func AwardBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "courseID"); err != nil {
			return err
		}
		if _, err := paramID(c, "learner_id", "learnerID"); err != nil {
			return err
		}

		reqData := new(struct {
			BadgeID uint `json:"badge_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.BadgeID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"badge_id": "Badge ID is required!"})
		}

		c.Locals("validatedBadgeAward", reqData)
		return c.Next()
	}
}

// IssueCertificate validates course/learner route parameters and the
// certificate payload
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "courseID"); err != nil {
			return err
		}
		if _, err := paramID(c, "learner_id", "learnerID"); err != nil {
			return err
		}

		reqData := new(struct {
			FinalScore            int                       `json:"final_score"`
			ValidatedCompetencies []courseModels.Competency `json:"validated_competencies"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.FinalScore < 0 || reqData.FinalScore > 100 {
			errors["final_score"] = "Final score must be between 0 and 100!"
		}
		for _, competency := range reqData.ValidatedCompetencies {
			if strings.TrimSpace(competency.Name) == "" {
				errors["validated_competencies"] = "Every competency needs a name!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// BadgeBody validates the admin badge-catalog payload
func BadgeBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Level       string `json:"level"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if reqData.Level == "" {
			reqData.Level = courseModels.BadgeBronze
		}
		if !validBadgeLevels[reqData.Level] {
			errors["level"] = "Level must be one of: bronze, argent, or, platine!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBadge", reqData)
		return c.Next()
	}
}
