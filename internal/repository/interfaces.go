package repository

import (
	"github.com/studyhubapp/studyhub-backend/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByEmails(emails []string) ([]models.User, error)
}

// StudyGroupRepositoryInterface defines the contract for study group repository operations
type StudyGroupRepositoryInterface interface {
	Create(group *models.StudyGroup) error
	FindByID(id uint) (*models.StudyGroup, error)
	FindByCreator(creatorID uint) (*models.StudyGroup, error)
	FindAll() ([]models.StudyGroup, error)
	AddMember(groupID, userID uint) error
	RemoveMember(groupID, userID uint) error
	IsMember(groupID, userID uint) (bool, error)
}

// GroupGoalRepositoryInterface defines the contract for goal repository operations
type GroupGoalRepositoryInterface interface {
	Create(goal *models.GroupGoal) error
	FindActiveByGroup(groupID uint) (*models.GroupGoal, error)
	Save(goal *models.GroupGoal) error
}

// ActivityRepositoryInterface defines the contract for the activity ledger
type ActivityRepositoryInterface interface {
	Create(activity *models.GroupMemberActivity) error
	Exists(groupID, userID, questionID uint) (bool, error)
	LeaderboardRows(groupID uint, metric models.GoalMetric, restrictStatus bool, offset, limit int) ([]LeaderboardRow, error)
	GroupTotals(groupID uint) (GroupTotalsRow, error)
}

// QuestionRepositoryInterface defines the contract for question repository operations
type QuestionRepositoryInterface interface {
	Create(question *models.Question) error
	FindByID(id uint) (*models.Question, error)
	FindByGroup(groupID uint) ([]models.Question, error)
	AddAnswer(answer *models.Answer) error
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByGroup(groupID uint) ([]models.Message, error)
}

// SubjectRepositoryInterface defines the contract for subject repository operations
type SubjectRepositoryInterface interface {
	Create(subject *models.Subject) error
	FindAll() ([]models.Subject, error)
}
