package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseService "elearn/services/course"

	"github.com/gofiber/fiber/v2"
)

// MarkStepComplete records one step completion for the caller. Enrollment is
// created implicitly on the first step; re-marking a step is a no-op.
func MarkStepComplete(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	stepIndex := c.Locals("stepIndex").(int)

	snapshot, err := courseService.MarkStepComplete(database.Database.Db, user.ID, uint(courseID), stepIndex)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step marked as completed!", snapshot)
}

// GetUserProgress returns the caller's progress snapshot for a course,
// zero-state when not yet enrolled
func GetUserProgress(c *fiber.Ctx) error {
	user := requireUser(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	snapshot, err := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", snapshot)
}
