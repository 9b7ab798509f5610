package jobRoutes

import (
	controllers "elearn/controllers/jobs"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/jobs"

	"github.com/gofiber/fiber/v2"
)

// SetupJobRoutes sets up job offer and candidacy routes
func SetupJobRoutes(app *fiber.App) {
	jobGroup := app.Group("/job")

	// Applicant-facing
	jobGroup.Get("/list", middleware.JWTMiddleware, controllers.GetPublishedJobOffers)
	jobGroup.Post("/:id/apply", middleware.JWTMiddleware, validators.Apply(), controllers.ApplyToJobOffer)

	// Company-facing
	companyGroup := app.Group("/job", middleware.JWTMiddleware, middleware.RequireRole(models.RoleCompany))
	companyGroup.Post("/", validators.CreateJobOffer(), controllers.CreateJobOffer)
	companyGroup.Get("/mine", controllers.GetCompanyJobOffers)
	companyGroup.Post("/:id/cancel", validators.JobOfferID(), controllers.CancelJobOffer)
	companyGroup.Get("/:id/candidacies", validators.JobOfferID(), controllers.GetJobOfferCandidacies)
	companyGroup.Put("/:job_id/candidacy/:id", validators.DecideCandidacy(), controllers.DecideCandidacy)
}
