package adminController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminGetAllUsers lists users with optional role filter and pagination
func AdminGetAllUsers(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedUserList").(*struct {
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

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminSetUserBlocked blocks or unblocks a user account
func AdminSetUserBlocked(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)
	blocked := c.Locals("blockStatus").(bool)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsBlocked = blocked
	if !blocked {
		user.BlockedUntil = nil
	}
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	user.Password = ""

	message := "User unblocked successfully!"
	if blocked {
		message = "User blocked successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// AdminCreateBadge adds a badge to the catalog
func AdminCreateBadge(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBadge").(*struct {
		Name        string `json:"name"`
		Level       string `json:"level"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	badge := courseModels.Badge{
		Name:        reqData.Name,
		Level:       reqData.Level,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create badge!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Badge created successfully!", badge)
}

// AdminGetBadges lists the badge catalog
func AdminGetBadges(c *fiber.Ctx) error {
	var badges []courseModels.Badge
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("level asc, name asc").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges": badges,
		"total":  len(badges),
	})
}
