package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	courseService "elearn/services/course"

	"github.com/gofiber/fiber/v2"
)

// requireUser reloads the authenticated user; returns nil when the request
// was already answered
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

// GetAllCourses lists learner-visible courses with filters and pagination
func GetAllCourses(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	// Only approved AND public courses are visible to learners
	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND approved = ? AND public = ?", false, true, true)

	// Apply optional filters
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}
	if language := c.Query("language"); language != "" {
		db = db.Where("language = ?", language)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a visible course with its ordered steps and the
// caller's progress
func GetCourseDetails(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND approved = ? AND public = ?", courseID, false, true, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var steps []courseModels.Step
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&steps)

	progress, err := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":   course,
		"steps":    steps,
		"progress": progress,
	})
}

// EnrollInCourse enrolls the caller in a visible course. Idempotent.
func EnrollInCourse(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	enrollment, err := courseService.Enroll(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetUserEnrollmentsList gets all enrollments for the current user
func GetUserEnrollmentsList(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle       string `json:"course_title"`
		CourseDescription string `json:"course_description"`
		CourseCategory    string `json:"course_category"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:        e,
			CourseTitle:       course.Title,
			CourseDescription: course.Description,
			CourseCategory:    course.Category,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// GetUserBadges gets all badge awards for the current user
func GetUserBadges(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	type AwardWithBadge struct {
		courseModels.BadgeAward
		BadgeName   string `json:"badge_name"`
		BadgeLevel  string `json:"badge_level"`
		CourseTitle string `json:"course_title"`
	}

	var awards []courseModels.BadgeAward
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&awards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	result := make([]AwardWithBadge, len(awards))
	for i, award := range awards {
		var badge courseModels.Badge
		database.Database.Db.Where("id = ?", award.BadgeID).First(&badge)
		var course courseModels.Course
		database.Database.Db.Where("id = ?", award.CourseID).First(&course)
		result[i] = AwardWithBadge{
			BadgeAward:  award,
			BadgeName:   badge.Name,
			BadgeLevel:  badge.Level,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges": result,
		"total":  len(result),
	})
}
