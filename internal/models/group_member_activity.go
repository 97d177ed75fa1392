package models

import (
	"time"
)

type ActivityStatus string

const (
	StatusSolved  ActivityStatus = "solved"
	StatusCorrect ActivityStatus = "correct"
)

func ValidActivityStatus(s ActivityStatus) bool {
	return s == StatusSolved || s == StatusCorrect
}

// GroupMemberActivity is an append-only ledger row. A question counts at
// most once per user per group; the composite unique index is the real
// guard behind the application-level existence check.
type GroupMemberActivity struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_activity_recent,priority:2,sort:desc" json:"created_at"`

	StudyGroupID uint           `gorm:"not null;uniqueIndex:idx_activity_once,priority:1;index:idx_activity_recent,priority:1" json:"study_group_id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_activity_once,priority:2" json:"user_id"`
	QuestionID   uint           `gorm:"not null;uniqueIndex:idx_activity_once,priority:3" json:"question_id"`
	Status       ActivityStatus `gorm:"type:varchar(10);not null" json:"status"`
	TimeSpent    int64          `gorm:"not null" json:"timeSpent"`

	StudyGroup StudyGroup `gorm:"foreignKey:StudyGroupID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}
