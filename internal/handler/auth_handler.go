package handler

import (
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/middleware"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp creates a provisional account. The caller must complete the profile
// in a second step before the account is usable.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	identity, err := h.authService.SignUp(c.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignUpResponse{
		UserID: identity.ID,
		Email:  identity.Email,
	})
}

// CompleteProfile finishes sign-up: user row, health profile and the zero
// ledger entry.
func (h *AuthHandler) CompleteProfile(c *fiber.Ctx) error {
	var req dto.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if req.UserID == "" || req.Email == "" {
		return domain.NewValidationError("userId and email are required")
	}

	identity := domain.ProvisionalIdentity{ID: req.UserID, Email: req.Email}
	health := domain.HealthProfile{
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	}

	profile, err := h.authService.CompleteProfile(c.Context(), identity, req.FirstName, req.LastName, health)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(profileResponse(profile))
}

// SignIn verifies credentials and issues the OTP challenge.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.authService.SignIn(c.Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(dto.SignInResponse{Status: "otp_required"})
}

// VerifyOtp completes the second factor and returns the session token plus
// the assembled profile.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	result, err := h.authService.VerifyOtp(c.Context(), req.Email, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(dto.VerifyOtpResponse{
		Token:   result.Token,
		Profile: profileResponse(&result.Profile),
	})
}

// Logout revokes the backend session for the authenticated user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return domain.NewAuthError("user not found in context", nil)
	}
	if err := h.authService.Logout(c.Context(), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func profileResponse(profile *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:      profile.User.ID,
		Email:       profile.User.Email,
		FirstName:   profile.User.FirstName,
		LastName:    profile.User.LastName,
		Points:      profile.User.Points,
		DateOfBirth: profile.Health.DateOfBirth,
		Gender:      profile.Health.Gender,
		Conditions:  profile.Health.Conditions,
		Medications: profile.Health.Medications,
		Allergies:   profile.Health.Allergies,
	}
}
