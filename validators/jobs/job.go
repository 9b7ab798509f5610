package jobValidator

import (
	"elearn/middleware"
	"elearn/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// JobOfferID validates the :id route parameter
func JobOfferID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		offerID, err := strconv.Atoi(raw)
		if err != nil || offerID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid job offer ID!", nil)
		}
		c.Locals("jobOfferID", offerID)
		return c.Next()
	}
}

// CreateJobOffer validates the posting payload
func CreateJobOffer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Localisation string `json:"localisation"`
			Salaire      string `json:"salaire"`
			ContractType string `json:"contract_type"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedJobOffer", reqData)
		return c.Next()
	}
}

// Apply validates the :id parameter and the optional application message
func Apply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		offerID, err := strconv.Atoi(raw)
		if err != nil || offerID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid job offer ID!", nil)
		}
		c.Locals("jobOfferID", offerID)

		reqData := new(struct {
			Message string `json:"message"`
		})
		// Message body is optional
		if err := c.BodyParser(reqData); err == nil {
			c.Locals("validatedCandidacy", reqData)
		}
		return c.Next()
	}
}

// DecideCandidacy validates route parameters and the accept/refuse decision
func DecideCandidacy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawOffer := strings.TrimSpace(c.Params("job_id"))
		offerID, err := strconv.Atoi(rawOffer)
		if err != nil || offerID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid job offer ID!", nil)
		}
		c.Locals("jobOfferID", offerID)

		rawCandidacy := strings.TrimSpace(c.Params("id"))
		candidacyID, err := strconv.Atoi(rawCandidacy)
		if err != nil || candidacyID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid candidacy ID!", nil)
		}
		c.Locals("candidacyID", candidacyID)

		reqData := new(struct {
			Statut string `json:"statut"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Statut != models.CandidacyAccepted && reqData.Statut != models.CandidacyRefused {
			return middleware.ValidationErrorResponse(c, map[string]string{"statut": "Statut must be acceptee or refusee!"})
		}

		c.Locals("candidacyDecision", reqData.Statut)
		return c.Next()
	}
}
