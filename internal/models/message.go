package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SenderID     uint   `gorm:"not null" json:"sender_id"`
	StudyGroupID uint   `gorm:"not null;index" json:"study_group_id"`
	Body         string `gorm:"type:text;not null" json:"message"`

	Sender     User       `gorm:"foreignKey:SenderID" json:"sender"`
	StudyGroup StudyGroup `gorm:"foreignKey:StudyGroupID" json:"-"`
}
