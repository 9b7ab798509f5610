package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog (approved AND public courses only)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	// Progression
	userGroup.Post("/:course_id/step/:step_index/complete", middleware.JWTMiddleware, validators.MarkStepComplete(), controllers.MarkStepComplete)
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// User enrollments, certificates and badges
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	userEnrollGroup.Get("/badges", middleware.JWTMiddleware, controllers.GetUserBadges)
}

// SetupInstructorRoutes sets up course authoring and certification routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor))

	// Authoring; any content edit sends the course back to review
	instructorGroup.Post("/course", validators.CourseBody(true), controllers.InstructorCreateCourse)
	instructorGroup.Put("/course/:id", validators.CourseID(), validators.CourseBody(false), controllers.InstructorUpdateCourse)
	instructorGroup.Get("/courses", controllers.InstructorGetCourses)

	// Publication of approved courses
	instructorGroup.Post("/course/:id/publish", validators.CourseID(), controllers.InstructorPublishCourse)
	instructorGroup.Post("/course/:id/unpublish", validators.CourseID(), controllers.InstructorUnpublishCourse)

	// Student roster with progress
	instructorGroup.Get("/course/:id/learners", validators.LearnerList(), controllers.InstructorListLearners)

	// Badge and certificate issuance
	instructorGroup.Post("/course/:id/learner/:learner_id/badge", validators.AwardBadge(), controllers.AwardBadge)
	instructorGroup.Post("/course/:id/learner/:learner_id/certificate", validators.IssueCertificate(), controllers.IssueCertificate)
}
