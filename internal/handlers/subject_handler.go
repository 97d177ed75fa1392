package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

type CreateSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}

	subject, err := h.subjectService.Create(req.Name, req.Description)
	if err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", err.Error())
	}
	return httpx.Created(c, "Subject created successfully", subject)
}

func (h *SubjectHandler) GetSubjects(c *fiber.Ctx) error {
	subjects, err := h.subjectService.List()
	if err != nil {
		return httpx.ServerError(c, err)
	}
	return httpx.OK(c, "Subjects fetched", subjects)
}
