package repository

import (
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *models.GroupMemberActivity) error {
	return r.db.Create(activity).Error
}

func (r *ActivityRepository) Exists(groupID, userID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMemberActivity{}).
		Where("study_group_id = ? AND user_id = ? AND question_id = ?", groupID, userID, questionID).
		Count(&count).Error
	return count > 0, err
}

// LeaderboardRow is one aggregated per-user line of the group leaderboard,
// before ranking is assigned.
type LeaderboardRow struct {
	UserID          uint      `gorm:"column:user_id" json:"userId"`
	Name            string    `gorm:"column:name" json:"name"`
	Avatar          string    `gorm:"column:avatar" json:"avatar"`
	QuestionsSolved int64     `gorm:"column:questions_solved" json:"questionsSolved"`
	TimeSpent       int64     `gorm:"column:time_spent" json:"timeSpent"`
	LastActivityAt  time.Time `gorm:"column:last_activity_at" json:"lastActivityAt"`
}

// LeaderboardRows aggregates the activity ledger per user and joins user
// display fields. Sorting is [metric desc, timeSpent desc, name asc] and
// pagination applies to the aggregated rows, not the raw ledger.
func (r *ActivityRepository) LeaderboardRows(groupID uint, metric models.GoalMetric, restrictStatus bool, offset, limit int) ([]LeaderboardRow, error) {
	statusClause := ""
	if restrictStatus {
		statusClause = "AND a.status IN ('solved', 'correct')"
	}

	orderBy := "questions_solved DESC, time_spent DESC, name ASC"
	if metric == models.MetricTimeSpent {
		orderBy = "time_spent DESC, name ASC"
	}

	query := `
SELECT
	a.user_id AS user_id,
	u.name AS name,
	u.avatar AS avatar,
	COUNT(*) AS questions_solved,
	COALESCE(SUM(a.time_spent), 0) AS time_spent,
	MAX(a.created_at) AS last_activity_at
FROM group_member_activities a
JOIN users u ON u.id = a.user_id
WHERE a.study_group_id = ? ` + statusClause + `
GROUP BY a.user_id, u.name, u.avatar
ORDER BY ` + orderBy + `
OFFSET ? LIMIT ?
`

	var rows []LeaderboardRow
	if err := r.db.Raw(query, groupID, offset, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GroupTotalsRow holds whole-group activity totals for progress computation.
type GroupTotalsRow struct {
	TotalQuestions int64 `gorm:"column:total_questions"`
	TotalTime      int64 `gorm:"column:total_time"`
}

func (r *ActivityRepository) GroupTotals(groupID uint) (GroupTotalsRow, error) {
	var row GroupTotalsRow
	err := r.db.Raw(`
SELECT
	COUNT(*) AS total_questions,
	COALESCE(SUM(time_spent), 0) AS total_time
FROM group_member_activities
WHERE study_group_id = ?
`, groupID).Scan(&row).Error
	return row, err
}
