package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Name, email, and password are required")
	}

	result, err := h.authService.Register(input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return httpx.Conflict(c, "EMAIL_TAKEN", "Email already registered", "")
		}
		return httpx.BadRequest(c, "INVALID_BODY", err.Error())
	}

	return httpx.Created(c, "User registered successfully", result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}

	if input.Email == "" || input.Password == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Email and password are required")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return httpx.Fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", "")
		}
		return httpx.ServerError(c, err)
	}

	return httpx.OK(c, "Login successful", result)
}
