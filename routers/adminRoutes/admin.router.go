package adminRoutes

import (
	adminControllers "elearn/controllers/admin"
	jobControllers "elearn/controllers/jobs"
	"elearn/middleware"
	"elearn/models"
	adminValidators "elearn/validators/admin"
	courseValidators "elearn/validators/course"
	jobValidators "elearn/validators/jobs"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up moderation and platform management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Course moderation
	adminGroup.Get("/course/pending", adminControllers.AdminGetPendingCourses)
	adminGroup.Post("/course/:id/approve", adminValidators.CourseID(), adminControllers.AdminApproveCourse)
	adminGroup.Post("/course/:id/reject", adminValidators.RejectCourse(), adminControllers.AdminRejectCourse)
	adminGroup.Get("/courses", adminValidators.ListQuery("validatedCourseList"), adminControllers.AdminGetAllCourses)

	// User management
	adminGroup.Get("/users", adminValidators.ListQuery("validatedUserList"), adminControllers.AdminGetAllUsers)
	adminGroup.Post("/user/:id/block", adminValidators.BlockUser(), adminControllers.AdminSetUserBlocked)

	// Badge catalog
	adminGroup.Post("/badge", courseValidators.BadgeBody(), adminControllers.AdminCreateBadge)
	adminGroup.Get("/badges", adminControllers.AdminGetBadges)

	// Job offer publication
	adminGroup.Post("/job/:id/publish", jobValidators.JobOfferID(), jobControllers.AdminPublishJobOffer)
}
