package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

type GroupHandler struct {
	groupService    *service.GroupService
	goalService     *service.GoalService
	activityService *service.ActivityService
	statsService    *service.StatsService
}

func NewGroupHandler(
	groupService *service.GroupService,
	goalService *service.GoalService,
	activityService *service.ActivityService,
	statsService *service.StatsService,
) *GroupHandler {
	return &GroupHandler{
		groupService:    groupService,
		goalService:     goalService,
		activityService: activityService,
		statsService:    statsService,
	}
}

func parseGroupID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Group name is required")
	}

	group, err := h.groupService.CreateGroup(userID, strings.TrimSpace(req.Name), req.Description, req.Members)
	if err != nil {
		return serviceError(c, err)
	}

	return httpx.Created(c, "Group created successfully", group.ToResponse())
}

type AddMemberRequest struct {
	Email string `json:"email"`
}

func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if req.Email == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Email is required")
	}

	group, err := h.groupService.AddMember(userID, groupID, req.Email)
	if err != nil {
		return serviceError(c, err)
	}

	return httpx.OK(c, "Member added successfully", group.ToResponse())
}

func (h *GroupHandler) AddGoal(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	var input service.AddGoalInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if strings.TrimSpace(input.Title) == "" {
		return httpx.BadRequest(c, "INVALID_BODY", "Goal title is required")
	}
	if !models.ValidGoalMetric(input.Metric) {
		return httpx.BadRequest(c, "INVALID_BODY", "Metric must be questionsSolved or timeSpent")
	}
	if input.Recurring != "" && !models.ValidGoalRecurrence(input.Recurring) {
		return httpx.BadRequest(c, "INVALID_BODY", "Recurrence must be daily or weekly")
	}

	goal, err := h.goalService.AddGoal(userID, groupID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return httpx.Created(c, "Goal created successfully", goal)
}

type RecordActivityRequest struct {
	QuestionID uint                  `json:"questionId"`
	Status     models.ActivityStatus `json:"status"`
	TimeSpent  int64                 `json:"timeSpent"`
}

func (h *GroupHandler) RecordActivity(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	var req RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid request body")
	}
	if req.QuestionID == 0 {
		return httpx.BadRequest(c, "INVALID_BODY", "Question ID is required")
	}
	if !models.ValidActivityStatus(req.Status) {
		return httpx.BadRequest(c, "INVALID_BODY", "Status must be solved or correct")
	}
	if req.TimeSpent < 0 {
		return httpx.BadRequest(c, "INVALID_BODY", "Time spent must not be negative")
	}

	activity, err := h.activityService.RecordActivity(userID, groupID, req.QuestionID, req.Status, req.TimeSpent)
	if err != nil {
		return serviceError(c, err)
	}

	return httpx.Created(c, "Activity recorded successfully", activity)
}

func (h *GroupHandler) GetLeaderboard(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", service.DefaultLeaderboardLimit)
	sortMetric := c.Query("sort")

	var subjects []string
	for _, s := range strings.Split(c.Query("subjects"), ",") {
		if s != "" {
			subjects = append(subjects, s)
		}
	}

	payload, err := h.statsService.Leaderboard(userID, groupID, page, limit, sortMetric, subjects)
	if err != nil {
		return serviceError(c, err)
	}

	return httpx.OK(c, "Leaderboard fetched", json.RawMessage(payload))
}

func (h *GroupHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	payload, err := h.statsService.Progress(userID, groupID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGoal) {
			return httpx.NotFound(c, "NO_ACTIVE_GOAL", "No active goal")
		}
		return serviceError(c, err)
	}

	return httpx.OK(c, "Progress fetched", json.RawMessage(payload))
}

func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		return httpx.ServerError(c, err)
	}

	responses := make([]models.StudyGroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, groups[i].ToResponse())
	}
	return httpx.OK(c, "Groups fetched", responses)
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	group, err := h.groupService.GetGroup(groupID)
	if err != nil {
		return serviceError(c, err)
	}
	return httpx.OK(c, "Group fetched", group.ToResponse())
}

func (h *GroupHandler) JoinGroup(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	group, err := h.groupService.JoinGroup(userID, groupID)
	if err != nil {
		return serviceError(c, err)
	}
	return httpx.OK(c, "Joined group successfully", group.ToResponse())
}

func (h *GroupHandler) LeaveGroup(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return httpx.Unauthorized(c, "Unauthorized")
	}
	groupID, ok := parseGroupID(c)
	if !ok {
		return httpx.BadRequest(c, "INVALID_BODY", "Invalid group ID")
	}

	if err := h.groupService.LeaveGroup(userID, groupID); err != nil {
		return serviceError(c, err)
	}
	return httpx.OK(c, "Left group successfully", nil)
}
