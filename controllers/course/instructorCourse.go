package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	courseService "elearn/services/course"

	"github.com/gofiber/fiber/v2"
)

// CourseRequest is the validated create/update payload
type CourseRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Category    *string                   `json:"category"`
	Level       *string                   `json:"level"`
	Language    *string                   `json:"language"`
	Steps       []courseService.StepInput `json:"steps"`
}

func editFromRequest(reqData *CourseRequest) courseService.CourseEdit {
	return courseService.CourseEdit{
		Title:       reqData.Title,
		Description: reqData.Description,
		Category:    reqData.Category,
		Level:       reqData.Level,
		Language:    reqData.Language,
		Steps:       reqData.Steps,
	}
}

// InstructorCreateCourse creates a new course awaiting moderation
func InstructorCreateCourse(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := courseService.CreateCourse(database.Database.Db, user.ID, editFromRequest(reqData))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully! It is now awaiting review.", course)
}

// InstructorUpdateCourse applies a content edit. The course goes back to the
// moderation queue and is hidden from learners until re-approved.
func InstructorUpdateCourse(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := courseService.UpdateCourse(database.Database.Db, user.ID, uint(courseID), editFromRequest(reqData))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully! It is now awaiting review.", course)
}

// InstructorPublishCourse makes an approved course visible to learners
func InstructorPublishCourse(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	course, err := courseService.SetPublished(database.Database.Db, user.ID, uint(courseID), true)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// InstructorUnpublishCourse hides a course from learners without touching
// its moderation state
func InstructorUnpublishCourse(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	course, err := courseService.SetPublished(database.Database.Db, user.ID, uint(courseID), false)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unpublished successfully!", course)
}

// InstructorGetCourses lists the caller's own courses in every moderation state
func InstructorGetCourses(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// InstructorListLearners returns the student roster with progress for an
// owned course. Supports pagination and a completion filter.
func InstructorListLearners(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	roster, err := courseService.ListLearners(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	// Thin consumer-side filter on completion status
	if completed := c.Query("completed"); completed != "" {
		wantCompleted := completed == "true"
		filtered := roster[:0]
		for _, row := range roster {
			if row.Terminated == wantCompleted {
				filtered = append(filtered, row)
			}
		}
		roster = filtered
	}

	reqData, _ := c.Locals("validatedLearnerList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := len(roster)
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}

	total := len(roster)
	if limit > 0 {
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		roster = roster[start:end]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learners fetched successfully!", fiber.Map{
		"learners": roster,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
