package jobController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

func requireUser(c *fiber.Ctx) *models.User {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		return nil
	}
	return &user
}

// CreateJobOffer posts a new offer; it waits for admin publication
func CreateJobOffer(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedJobOffer").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Localisation string `json:"localisation"`
		Salaire      string `json:"salaire"`
		ContractType string `json:"contract_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offer := models.JobOffer{
		CompanyID:    user.ID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Localisation: reqData.Localisation,
		Salaire:      reqData.Salaire,
		ContractType: reqData.ContractType,
		Statut:       models.JobStatusPending,
	}

	if err := database.Database.Db.Create(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create job offer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Job offer created successfully! It is now awaiting publication.", offer)
}

// GetPublishedJobOffers lists offers visible to applicants
func GetPublishedJobOffers(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	db := database.Database.Db.Model(&models.JobOffer{}).
		Where("statut = ? AND is_deleted = ?", models.JobStatusPublished, false)

	if localisation := c.Query("localisation"); localisation != "" {
		db = db.Where("localisation = ?", localisation)
	}
	if contractType := c.Query("contract_type"); contractType != "" {
		db = db.Where("contract_type = ?", contractType)
	}

	var offers []models.JobOffer
	if err := db.Order("created_at desc").Find(&offers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch job offers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Job offers fetched successfully!", fiber.Map{
		"offers": offers,
		"total":  len(offers),
	})
}

// GetCompanyJobOffers lists the caller's own offers in every state
func GetCompanyJobOffers(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	var offers []models.JobOffer
	if err := database.Database.Db.Where("company_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&offers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch job offers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Job offers fetched successfully!", fiber.Map{
		"offers": offers,
		"total":  len(offers),
	})
}

// CancelJobOffer withdraws an offer the caller owns
func CancelJobOffer(c *fiber.Ctx) error {
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
	if offer.Statut == models.JobStatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Job offer is already cancelled!", nil)
	}

	offer.Statut = models.JobStatusCancelled
	if err := database.Database.Db.Save(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel job offer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Job offer cancelled successfully!", offer)
}

// AdminPublishJobOffer moves a pending offer to publiee. Guarded update so
// concurrent decisions cannot both land.
func AdminPublishJobOffer(c *fiber.Ctx) error {
	offerID := c.Locals("jobOfferID").(int)

	var offer models.JobOffer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", offerID, false).First(&offer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job offer not found!", nil)
	}

	res := database.Database.Db.Model(&models.JobOffer{}).
		Where("id = ? AND statut = ?", offerID, models.JobStatusPending).
		Update("statut", models.JobStatusPublished)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish job offer!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Job offer is not awaiting publication!", nil)
	}

	offer.Statut = models.JobStatusPublished
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Job offer published successfully!", offer)
}
