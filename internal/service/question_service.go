package service

import (
	"errors"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"gorm.io/gorm"
)

type QuestionService struct {
	questionRepo repository.QuestionRepositoryInterface
	groupRepo    repository.StudyGroupRepositoryInterface
}

func NewQuestionService(
	questionRepo repository.QuestionRepositoryInterface,
	groupRepo repository.StudyGroupRepositoryInterface,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		groupRepo:    groupRepo,
	}
}

func (s *QuestionService) Ask(userID, groupID uint, text string) (*models.Question, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	question := &models.Question{
		Text:         text,
		AskedByID:    userID,
		StudyGroupID: groupID,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByID(question.ID)
}

func (s *QuestionService) Answer(userID, questionID uint, text string) (*models.Question, error) {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &models.Answer{
		QuestionID:   questionID,
		AnsweredByID: userID,
		Text:         text,
	}
	if err := s.questionRepo.AddAnswer(answer); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByID(questionID)
}

func (s *QuestionService) ListForGroup(groupID uint) ([]models.Question, error) {
	return s.questionRepo.FindByGroup(groupID)
}
