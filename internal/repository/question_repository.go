package repository

import (
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.
		Preload("AskedBy").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at DESC")
		}).
		Preload("Answers.AnsweredBy").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByGroup(groupID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.
		Where("study_group_id = ?", groupID).
		Preload("AskedBy").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at DESC")
		}).
		Preload("Answers.AnsweredBy").
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) AddAnswer(answer *models.Answer) error {
	return r.db.Create(answer).Error
}
