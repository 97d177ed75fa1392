package service

import (
	"errors"
)

// Domain errors surfaced to handlers, which map them onto the response
// envelope's error codes.
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrUserAlreadyCreator = errors.New("user already created a group")
	ErrUserAlreadyMember  = errors.New("user is already a member of this group")
	ErrForbidden          = errors.New("forbidden")
	ErrActiveGoalExists   = errors.New("an active goal already exists for this group")
	ErrNoActiveGoal       = errors.New("no active goal for this group")
	ErrGoalExpired        = errors.New("the active goal has expired and is now archived")
	ErrDuplicateActivity  = errors.New("this question has already been counted for this user")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
