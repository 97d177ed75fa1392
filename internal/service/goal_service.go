package service

import (
	"errors"
	"log"
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/cache"
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"gorm.io/gorm"
)

type GoalService struct {
	groupRepo  repository.StudyGroupRepositoryInterface
	goalRepo   repository.GroupGoalRepositoryInterface
	statsCache *cache.GroupStatsCache
}

func NewGoalService(
	groupRepo repository.StudyGroupRepositoryInterface,
	goalRepo repository.GroupGoalRepositoryInterface,
	statsCache *cache.GroupStatsCache,
) *GoalService {
	return &GoalService{
		groupRepo:  groupRepo,
		goalRepo:   goalRepo,
		statsCache: statsCache,
	}
}

type AddGoalInput struct {
	Title     string                `json:"title"`
	Subjects  []string              `json:"subject"`
	Metric    models.GoalMetric     `json:"metric"`
	Target    int64                 `json:"target"`
	Deadline  *time.Time            `json:"deadline"`
	Recurring models.GoalRecurrence `json:"recurring"`
}

// AddGoal creates the group's active goal, then evicts the group's stats
// caches whether or not creation succeeded: an archival side effect during
// a failed attempt still changes what progress reads should see.
func (s *GoalService) AddGoal(creatorID, groupID uint, input AddGoalInput) (*models.GroupGoal, error) {
	goal, err := s.addGoal(creatorID, groupID, input)
	s.invalidateStats(groupID)
	return goal, err
}

func (s *GoalService) addGoal(creatorID, groupID uint, input AddGoalInput) (*models.GroupGoal, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if group.CreatorID != creatorID {
		return nil, ErrForbidden
	}

	// No store-level uniqueness backs the active-goal invariant, so a read
	// failure here must abort rather than fall through to a second create.
	if _, err := s.goalRepo.FindActiveByGroup(groupID); err == nil {
		return nil, ErrActiveGoalExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	goal := &models.GroupGoal{
		StudyGroupID: groupID,
		Title:        input.Title,
		Subjects:     input.Subjects,
		Metric:       input.Metric,
		Target:       input.Target,
		Deadline:     input.Deadline,
		Recurring:    input.Recurring,
		IsActive:     true,
		Archived:     false,
	}
	if goal.Subjects == nil {
		goal.Subjects = []string{}
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) invalidateStats(groupID uint) {
	if err := s.statsCache.InvalidateGroup(groupID); err != nil {
		log.Printf("group %d: stats cache invalidation failed: %v", groupID, err)
	}
}
