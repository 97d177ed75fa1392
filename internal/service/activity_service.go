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

type ActivityService struct {
	groupRepo    repository.StudyGroupRepositoryInterface
	goalRepo     repository.GroupGoalRepositoryInterface
	activityRepo repository.ActivityRepositoryInterface
	statsCache   *cache.GroupStatsCache
	now          func() time.Time
}

func NewActivityService(
	groupRepo repository.StudyGroupRepositoryInterface,
	goalRepo repository.GroupGoalRepositoryInterface,
	activityRepo repository.ActivityRepositoryInterface,
	statsCache *cache.GroupStatsCache,
) *ActivityService {
	return &ActivityService{
		groupRepo:    groupRepo,
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

// RecordActivity appends a ledger row for a solved question, then evicts the
// group's stats caches unconditionally: a lazy-expiry archival can change
// progress even when the call itself fails.
func (s *ActivityService) RecordActivity(userID, groupID, questionID uint, status models.ActivityStatus, timeSpent int64) (*models.GroupMemberActivity, error) {
	activity, err := s.recordActivity(userID, groupID, questionID, status, timeSpent)
	s.invalidateStats(groupID)
	return activity, err
}

func (s *ActivityService) recordActivity(userID, groupID, questionID uint, status models.ActivityStatus, timeSpent int64) (*models.GroupMemberActivity, error) {
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

	goal, err := s.goalRepo.FindActiveByGroup(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveGoal
		}
		return nil, err
	}

	// Lazy expiry: the archival persists even though the call fails.
	if goal.CheckExpiry(s.now()) {
		if err := s.goalRepo.Save(goal); err != nil {
			return nil, err
		}
		return nil, ErrGoalExpired
	}

	// Fast-path duplicate check; the composite unique index is the real guard.
	exists, err := s.activityRepo.Exists(groupID, userID, questionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateActivity
	}

	activity := &models.GroupMemberActivity{
		StudyGroupID: groupID,
		UserID:       userID,
		QuestionID:   questionID,
		Status:       status,
		TimeSpent:    timeSpent,
	}
	if err := s.activityRepo.Create(activity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateActivity
		}
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) invalidateStats(groupID uint) {
	if err := s.statsCache.InvalidateGroup(groupID); err != nil {
		log.Printf("group %d: stats cache invalidation failed: %v", groupID, err)
	}
}
