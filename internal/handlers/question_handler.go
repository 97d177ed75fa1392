package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type AskQuestionRequest struct {
	Question   string `json:"question"`
	StudyGroup uint   `json:"studyGroup"`
}

func (h *QuestionHandler) AskQuestion(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}

	var req AskQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Question text is required")
	}

	question, err := h.questionService.Ask(userID, req.StudyGroup, strings.TrimSpace(req.Question))
	if err != nil {
		return serviceError(c, err)
	}
	return httpx.Created(c, "Question asked successfully", question)
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer"`
}

func (h *QuestionHandler) AnswerQuestion(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	questionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid question ID")
	}

	var req AnswerQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if strings.TrimSpace(req.Answer) == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Answer text is required")
	}

	question, err := h.questionService.Answer(userID, uint(questionID), strings.TrimSpace(req.Answer))
	if err != nil {
		return serviceError(c, err)
	}
	return httpx.OK(c, "Answer added successfully", question)
}

func (h *QuestionHandler) GetGroupQuestions(c *fiber.Ctx) error {
	groupID, err := strconv.ParseUint(c.Params("groupId"), 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	questions, err := h.questionService.ListForGroup(uint(groupID))
	if err != nil {
		return httpx.ServerError(c, err)
	}
	return httpx.OK(c, "Questions fetched", questions)
}
