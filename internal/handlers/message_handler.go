package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/service"
	"github.com/studyhubapp/studyhub-backend/internal/validation"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	Message    string `json:"message"`
	StudyGroup uint   `json:"studyGroup"`
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	body := validation.TrimAndLimit(req.Message, validation.MaxMessageLength())
	if body == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Message text is required")
	}

	message, err := h.messageService.Send(userID, req.StudyGroup, body)
	if err != nil {
		return serviceError(c, err)
	}
	return httpx.Created(c, "Message sent successfully", message)
}

func (h *MessageHandler) GetGroupMessages(c *fiber.Ctx) error {
	groupID, err := strconv.ParseUint(c.Params("groupId"), 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	messages, err := h.messageService.ListForGroup(uint(groupID))
	if err != nil {
		return httpx.ServerError(c, err)
	}
	return httpx.OK(c, "Messages fetched", messages)
}
