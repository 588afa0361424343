package handler

import (
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/middleware"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the assembled profile of the authenticated user.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// UpdateHealthProfile replaces the health profile fields of the
// authenticated user.
func (h *UserHandler) UpdateHealthProfile(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	health := domain.HealthProfile{
		UserID:      userID,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	}
	if err := h.userService.UpdateHealthProfile(c.Context(), health); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
