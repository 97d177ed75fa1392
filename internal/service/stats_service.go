package service

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/cache"
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 50
)

// StatsService computes the group leaderboard and goal progress from the
// activity ledger, with cached JSON snapshots in front of both.
type StatsService struct {
	groupRepo    repository.StudyGroupRepositoryInterface
	goalRepo     repository.GroupGoalRepositoryInterface
	activityRepo repository.ActivityRepositoryInterface
	statsCache   *cache.GroupStatsCache
}

func NewStatsService(
	groupRepo repository.StudyGroupRepositoryInterface,
	goalRepo repository.GroupGoalRepositoryInterface,
	activityRepo repository.ActivityRepositoryInterface,
	statsCache *cache.GroupStatsCache,
) *StatsService {
	return &StatsService{
		groupRepo:    groupRepo,
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		statsCache:   statsCache,
	}
}

type LeaderboardEntry struct {
	Rank int `json:"rank"`
	repository.LeaderboardRow
}

type LeaderboardData struct {
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Metric  models.GoalMetric  `json:"metric"`
	Results []LeaderboardEntry `json:"results"`
}

// Leaderboard returns the ranked, paginated leaderboard as a JSON snapshot.
// A cache hit returns the stored payload verbatim. Ranking is competition
// style: rows tied on the primary metric share a rank, and the rank
// reference point restarts on each page, so ties spanning a page boundary
// are not detected. That quirk is kept deliberately.
func (s *StatsService) Leaderboard(userID, groupID uint, page, limit int, sortMetric string, subjects []string) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	metric := models.MetricQuestionsSolved
	if sortMetric == string(models.MetricTimeSpent) {
		metric = models.MetricTimeSpent
	}

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

	activeGoal, err := s.goalRepo.FindActiveByGroup(groupID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if cached, ok := s.statsCache.GetLeaderboard(groupID, string(metric), subjects, page, limit); ok {
		return cached, nil
	}

	// The subject filter only restricts activity status, and only while an
	// active goal exists; activities carry no subject field. Inherited
	// behavior, kept until real subject matching is called for.
	restrictStatus := len(subjects) > 0 && activeGoal != nil

	rows, err := s.activityRepo.LeaderboardRows(groupID, metric, restrictStatus, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	results := make([]LeaderboardEntry, 0, len(rows))
	currentRank := 0
	var lastMetric int64
	haveLast := false
	for i, row := range rows {
		value := row.QuestionsSolved
		if metric == models.MetricTimeSpent {
			value = row.TimeSpent
		}
		if !haveLast || value < lastMetric {
			currentRank = i + 1 + (page-1)*limit
			lastMetric = value
			haveLast = true
		}
		results = append(results, LeaderboardEntry{Rank: currentRank, LeaderboardRow: row})
	}

	payload, err := json.Marshal(LeaderboardData{
		Page:    page,
		Limit:   limit,
		Metric:  metric,
		Results: results,
	})
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.SetLeaderboard(groupID, string(metric), subjects, page, limit, payload); err != nil {
		log.Printf("group %d: leaderboard cache write failed: %v", groupID, err)
	}

	return payload, nil
}

type ProgressGoal struct {
	ID        uint                  `json:"id"`
	Title     string                `json:"title"`
	Subjects  []string              `json:"subjects"`
	Metric    models.GoalMetric     `json:"metric"`
	Target    int64                 `json:"target"`
	Deadline  *time.Time            `json:"deadline,omitempty"`
	Recurring models.GoalRecurrence `json:"recurring,omitempty"`
}

type ProgressTotals struct {
	QuestionsSolved int64 `json:"questionsSolved"`
	TimeSpent       int64 `json:"timeSpent"`
}

type ProgressStat struct {
	Value      int64   `json:"value"`
	Percentage float64 `json:"percentage"`
}

type ProgressData struct {
	Goal     ProgressGoal   `json:"goal"`
	Totals   ProgressTotals `json:"totals"`
	Progress ProgressStat   `json:"progress"`
}

// Progress returns the group's aggregate progress toward its active goal as
// a JSON snapshot.
func (s *StatsService) Progress(userID, groupID uint) (json.RawMessage, error) {
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

	if cached, ok := s.statsCache.GetProgress(groupID); ok {
		return cached, nil
	}

	totals, err := s.activityRepo.GroupTotals(groupID)
	if err != nil {
		return nil, err
	}

	value := totals.TotalQuestions
	if goal.Metric == models.MetricTimeSpent {
		value = totals.TotalTime
	}

	percentage := 0.0
	if goal.Target > 0 {
		percentage = float64(value) / float64(goal.Target) * 100
		if percentage > 100 {
			percentage = 100
		}
		percentage = math.Round(percentage*100) / 100
	}

	subjects := goal.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	payload, err := json.Marshal(ProgressData{
		Goal: ProgressGoal{
			ID:        goal.ID,
			Title:     goal.Title,
			Subjects:  subjects,
			Metric:    goal.Metric,
			Target:    goal.Target,
			Deadline:  goal.Deadline,
			Recurring: goal.Recurring,
		},
		Totals: ProgressTotals{
			QuestionsSolved: totals.TotalQuestions,
			TimeSpent:       totals.TotalTime,
		},
		Progress: ProgressStat{
			Value:      value,
			Percentage: percentage,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.SetProgress(groupID, payload); err != nil {
		log.Printf("group %d: progress cache write failed: %v", groupID, err)
	}

	return payload, nil
}
