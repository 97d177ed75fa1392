package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhubapp/studyhub-backend/internal/httpx"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

// serviceError maps domain errors onto the response envelope. Anything
// unrecognized is reported as SERVER_ERROR with the cause as details.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		return httpx.NotFound(c, "GROUP_NOT_FOUND", "Group not found")
	case errors.Is(err, service.ErrUserNotFound):
		return httpx.NotFound(c, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		return httpx.NotFound(c, "QUESTION_NOT_FOUND", "Question not found")
	case errors.Is(err, service.ErrForbidden):
		return httpx.Forbidden(c, "Forbidden")
	case errors.Is(err, service.ErrUserAlreadyCreator):
		return httpx.Fail(c, fiber.StatusBadRequest, "USER_ALREADY_CREATOR",
			"You are already a creator of another group.",
			"A user can be a creator in only one group at a time.")
	case errors.Is(err, service.ErrUserAlreadyMember):
		return httpx.Conflict(c, "USER_ALREADY_MEMBER", "User is already a member of this group", "")
	case errors.Is(err, service.ErrActiveGoalExists):
		return httpx.Conflict(c, "ACTIVE_GOAL_EXISTS", "An active goal already exists for this group.", "")
	case errors.Is(err, service.ErrNoActiveGoal):
		return httpx.BadRequest(c, "NO_ACTIVE_GOAL", "No active goal for this group")
	case errors.Is(err, service.ErrGoalExpired):
		return httpx.BadRequest(c, "GOAL_EXPIRED", "The active goal has expired and is now archived.")
	case errors.Is(err, service.ErrDuplicateActivity):
		return httpx.Conflict(c, "DUPLICATE_ACTIVITY", "This question has already been counted for this user.", "")
	default:
		return httpx.ServerError(c, err)
	}
}

// callerID reads the authenticated user from locals; missing identity is
// UNAUTHORIZED regardless of route.
func callerID(c *fiber.Ctx) (uint, bool) {
	return httpx.LocalUint(c, "userID")
}
