package repository

import (
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

type GroupGoalRepository struct {
	db *gorm.DB
}

func NewGroupGoalRepository(db *gorm.DB) *GroupGoalRepository {
	return &GroupGoalRepository{db: db}
}

func (r *GroupGoalRepository) Create(goal *models.GroupGoal) error {
	return r.db.Create(goal).Error
}

// FindActiveByGroup returns the goal with isActive=true and archived=false,
// of which there is at most one per group.
func (r *GroupGoalRepository) FindActiveByGroup(groupID uint) (*models.GroupGoal, error) {
	var goal models.GroupGoal
	err := r.db.
		Where("study_group_id = ? AND is_active = true AND archived = false", groupID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GroupGoalRepository) Save(goal *models.GroupGoal) error {
	return r.db.Save(goal).Error
}
