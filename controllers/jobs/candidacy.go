package jobController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplyToJobOffer creates a candidacy for a published offer. One candidacy
// per (user, offer).
func ApplyToJobOffer(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	offerID := c.Locals("jobOfferID").(int)

	var offer models.JobOffer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND statut = ?", offerID, false, models.JobStatusPublished).First(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job offer not found or not published!", nil)
	}

	reqData, _ := c.Locals("validatedCandidacy").(*struct {
		Message string `json:"message"`
	})
	message := ""
	if reqData != nil {
		message = reqData.Message
	}

	candidacy := models.Candidacy{
		JobOfferID: uint(offerID),
		UserID:     user.ID,
		Message:    message,
		Statut:     models.CandidacyPending,
	}

	if err := database.Database.Db.Create(&candidacy).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already applied to this job offer!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to apply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", candidacy)
}

// GetJobOfferCandidacies lists applications for an offer the caller owns
func GetJobOfferCandidacies(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	offerID := c.Locals("jobOfferID").(int)

	var offer models.JobOffer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", offerID, false).First(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job offer not found!", nil)
	}
	if offer.CompanyID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this job offer!", nil)
	}

	var candidacies []models.Candidacy
	if err := database.Database.Db.Where("job_offer_id = ? AND is_deleted = ?", offerID, false).Order("created_at desc").Find(&candidacies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch candidacies!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Candidacies fetched successfully!", fiber.Map{
		"candidacies": candidacies,
		"total":       len(candidacies),
	})
}

// DecideCandidacy accepts or refuses a pending candidacy on an owned offer
func DecideCandidacy(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	offerID := c.Locals("jobOfferID").(int)
	candidacyID := c.Locals("candidacyID").(int)
	decision := c.Locals("candidacyDecision").(string)

	var offer models.JobOffer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", offerID, false).First(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job offer not found!", nil)
	}
	if offer.CompanyID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this job offer!", nil)
	}

	res := database.Database.Db.Model(&models.Candidacy{}).
		Where("id = ? AND job_offer_id = ? AND statut = ? AND is_deleted = ?", candidacyID, offerID, models.CandidacyPending, false).
		Update("statut", decision)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update candidacy!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Candidacy not found or already decided!", nil)
	}

	var candidacy models.Candidacy
	database.Database.Db.Where("id = ?", candidacyID).First(&candidacy)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Candidacy updated successfully!", candidacy)
}
