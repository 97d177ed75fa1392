package service

import (
	"errors"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
	groupRepo   repository.StudyGroupRepositoryInterface
}

func NewMessageService(
	messageRepo repository.MessageRepositoryInterface,
	groupRepo repository.StudyGroupRepositoryInterface,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
	}
}

// Send posts a message into a group. Only members may send.
func (s *MessageService) Send(userID, groupID uint, body string) (*models.Message, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}

	message := &models.Message{
		SenderID:     userID,
		StudyGroupID: groupID,
		Body:         body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) ListForGroup(groupID uint) ([]models.Message, error) {
	return s.messageRepo.FindByGroup(groupID)
}
