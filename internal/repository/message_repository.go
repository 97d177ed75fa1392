package repository

import (
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByGroup(groupID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("study_group_id = ?", groupID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
