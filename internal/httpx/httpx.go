package httpx

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Envelope is the uniform response shape: {success, message, data?, error?}.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, code, message, details string) error {
	if message == "" {
		message = "Request failed"
	}
	return c.Status(status).JSON(Envelope{
		Success: false,
		Message: message,
		Error:   &ErrorBody{Code: code, Details: details},
	})
}

func BadRequest(c *fiber.Ctx, code, message string) error {
	return Fail(c, fiber.StatusBadRequest, code, message, "")
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, "")
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusForbidden, "FORBIDDEN", message, "")
}

func NotFound(c *fiber.Ctx, code, message string) error {
	return Fail(c, fiber.StatusNotFound, code, message, "")
}

func Conflict(c *fiber.Ctx, code, message, details string) error {
	return Fail(c, fiber.StatusConflict, code, message, details)
}

// ServerError reports an unexpected store or cache failure with the
// underlying message as details; it never leaks as an unhandled fault.
func ServerError(c *fiber.Ctx, err error) error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server Error", details)
}

// LocalUint reads a typed value the auth middleware stored in locals.
func LocalUint(c *fiber.Ctx, key string) (uint, bool) {
	v := c.Locals(key)
	if v == nil {
		return 0, false
	}
	u, ok := v.(uint)
	return u, ok
}
