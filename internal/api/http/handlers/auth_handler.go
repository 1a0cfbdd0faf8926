package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/dto"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// AuthHandler exposes registration, login, and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required")
	}

	user, token, exp, err := h.auth.RegisterUser(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": dto.NewUserSummary(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required")
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": dto.NewUserSummary(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// GoogleLogin handles POST /auth/google.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Code == "" {
		return apperrors.NewValidationError("missing authorization code")
	}

	user, token, exp, err := h.auth.LoginWithGoogle(c.Context(), req.Code)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": dto.NewUserSummary(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.CurrentUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserSummary(user))
}
