package repository

import (
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

type StudyGroupRepository struct {
	db *gorm.DB
}

func NewStudyGroupRepository(db *gorm.DB) *StudyGroupRepository {
	return &StudyGroupRepository{db: db}
}

func (r *StudyGroupRepository) Create(group *models.StudyGroup) error {
	return r.db.Create(group).Error
}

func (r *StudyGroupRepository) FindByID(id uint) (*models.StudyGroup, error) {
	var group models.StudyGroup
	err := r.db.
		Preload("Creator").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_members.joined_at ASC")
		}).
		Preload("Members.User").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *StudyGroupRepository) FindByCreator(creatorID uint) (*models.StudyGroup, error) {
	var group models.StudyGroup
	err := r.db.Where("creator_id = ?", creatorID).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *StudyGroupRepository) FindAll() ([]models.StudyGroup, error) {
	var groups []models.StudyGroup
	err := r.db.
		Preload("Creator").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_members.joined_at ASC")
		}).
		Preload("Members.User").
		Find(&groups).Error
	return groups, err
}

func (r *StudyGroupRepository) AddMember(groupID, userID uint) error {
	member := models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	return r.db.Create(&member).Error
}

func (r *StudyGroupRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{}).Error
}

func (r *StudyGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
