package adminController

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

// notifyInstructor mails the course owner about a moderation decision
func notifyInstructor(course *courseModels.Course, decision, reason string) {
	go func() {
		var instructor models.User
		if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err != nil {
			return
		}
		if err := utils.SendModerationDecisionEmail(instructor.Email, course.Title, decision, reason); err != nil {
			log.Printf("Error sending moderation email: %v", err)
		}
	}()
}

// AdminGetPendingCourses lists courses awaiting review, oldest first
func AdminGetPendingCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("moderation_status = ? AND is_deleted = ?", courseModels.ModerationPending, false).
		Order("updated_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// AdminApproveCourse approves a pending course. Publication remains the
// instructor's call unless auto-publish is configured.
func AdminApproveCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := courseService.Approve(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	notifyInstructor(course, "approved", "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course approved successfully!", course)
}

// AdminRejectCourse rejects a pending course with a reason
func AdminRejectCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedRejection").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := courseService.Reject(database.Database.Db, userID, uint(courseID), reqData.Reason)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	notifyInstructor(course, "rejected", reqData.Reason)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course rejected successfully!", course)
}

// AdminGetAllCourses lists every course regardless of moderation state
func AdminGetAllCourses(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if status := c.Query("moderation_status"); status != "" {
		db = db.Where("moderation_status = ?", status)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
