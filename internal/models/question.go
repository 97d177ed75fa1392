package models

import (
	"time"
)

type Question struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Text         string `gorm:"type:text;not null" json:"question"`
	AskedByID    uint   `gorm:"not null" json:"asked_by_id"`
	StudyGroupID uint   `gorm:"not null;index" json:"study_group_id"`

	AskedBy    User       `gorm:"foreignKey:AskedByID" json:"askedBy"`
	StudyGroup StudyGroup `gorm:"foreignKey:StudyGroupID" json:"-"`
	Answers    []Answer   `gorm:"foreignKey:QuestionID" json:"answers"`
}

type Answer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	QuestionID   uint   `gorm:"not null;index" json:"question_id"`
	AnsweredByID uint   `gorm:"not null" json:"answered_by_id"`
	Text         string `gorm:"type:text;not null" json:"answer"`

	AnsweredBy User `gorm:"foreignKey:AnsweredByID" json:"answeredBy"`
}
