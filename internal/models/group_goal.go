package models

import (
	"time"
)

type GoalMetric string

const (
	MetricQuestionsSolved GoalMetric = "questionsSolved"
	MetricTimeSpent       GoalMetric = "timeSpent"
)

func ValidGoalMetric(m GoalMetric) bool {
	return m == MetricQuestionsSolved || m == MetricTimeSpent
}

type GoalRecurrence string

const (
	RecurrenceDaily  GoalRecurrence = "daily"
	RecurrenceWeekly GoalRecurrence = "weekly"
)

func ValidGoalRecurrence(r GoalRecurrence) bool {
	return r == RecurrenceDaily || r == RecurrenceWeekly
}

type GroupGoal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudyGroupID uint           `gorm:"not null;index:idx_group_goals_active,priority:1" json:"study_group_id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Subjects     []string       `gorm:"serializer:json" json:"subjects"`
	Metric       GoalMetric     `gorm:"type:varchar(20);not null" json:"metric"`
	Target       int64          `gorm:"not null" json:"target"`
	Deadline     *time.Time     `gorm:"index" json:"deadline,omitempty"`
	Recurring    GoalRecurrence `gorm:"type:varchar(10)" json:"recurring,omitempty"`
	IsActive     bool           `gorm:"default:true;index:idx_group_goals_active,priority:2" json:"isActive"`
	Archived     bool           `gorm:"default:false;index:idx_group_goals_active,priority:3" json:"archived"`
	LastResetAt  *time.Time     `json:"last_reset_at,omitempty"`

	StudyGroup StudyGroup `gorm:"foreignKey:StudyGroupID" json:"-"`
}

// CheckExpiry flips an active goal whose deadline has passed into the
// archived state. It mutates the receiver only; the caller persists the
// transition. Returns true when the transition happened.
func (g *GroupGoal) CheckExpiry(now time.Time) bool {
	if g.Deadline == nil || !now.After(*g.Deadline) {
		return false
	}
	if !g.IsActive || g.Archived {
		return false
	}
	g.IsActive = false
	g.Archived = true
	return true
}
