package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	courseService "elearn/services/course"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// certificateRenderer is shared by all issuance requests
var certificateRenderer = utils.NewCertificateRenderer()

// AwardBadge gives a badge to an eligible learner for an owned course.
// Re-awarding the same badge returns the existing award.
func AwardBadge(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	learnerID := c.Locals("learnerID").(int)

	reqData, ok := c.Locals("validatedBadgeAward").(*struct {
		BadgeID uint `json:"badge_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	award, err := courseService.AwardBadge(database.Database.Db, user.ID, uint(courseID), uint(learnerID), reqData.BadgeID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge awarded successfully!", award)
}

// IssueCertificate creates the one immutable certificate for a learner in an
// owned course and emails the download link
func IssueCertificate(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	learnerID := c.Locals("learnerID").(int)

	reqData, ok := c.Locals("validatedCertificate").(*struct {
		FinalScore            int                       `json:"final_score"`
		ValidatedCompetencies []courseModels.Competency `json:"validated_competencies"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	cert, err := courseService.IssueCertificate(
		database.Database.Db,
		certificateRenderer,
		user.ID,
		uint(courseID),
		uint(learnerID),
		reqData.FinalScore,
		reqData.ValidatedCompetencies,
	)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	// Notify the learner; issuance already succeeded so a mail failure only logs
	go func(cert courseModels.Certificate) {
		var learner models.User
		if err := database.Database.Db.Where("id = ?", cert.UserID).First(&learner).Error; err != nil {
			return
		}
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		if err := utils.SendCertificateEmail(learner.Email, course.Title, cert.CertificateNumber, cert.ArtifactURL); err != nil {
			log.Printf("Error sending certificate email: %v", err)
		}
	}(*cert)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}
