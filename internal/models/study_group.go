package models

import (
	"time"
)

type StudyGroup struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	SubjectID   *uint  `json:"subject_id,omitempty"`
	// A user can be the creator of at most one group; the index backs the
	// application-level pre-check.
	CreatorID uint `gorm:"uniqueIndex;not null" json:"creator_id"`

	Subject *Subject      `gorm:"foreignKey:SubjectID" json:"-"`
	Creator User          `gorm:"foreignKey:CreatorID" json:"-"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
}

type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User  User       `gorm:"foreignKey:UserID" json:"user"`
	Group StudyGroup `gorm:"foreignKey:GroupID" json:"-"`
}

type StudyGroupResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     UserRef   `json:"createdBy"`
	Members     []UserRef `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse expands the creator and members to display fields. Member
// order follows join order.
func (g *StudyGroup) ToResponse() StudyGroupResponse {
	members := make([]UserRef, 0, len(g.Members))
	for i := range g.Members {
		members = append(members, g.Members[i].User.ToRef())
	}
	return StudyGroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Creator:     g.Creator.ToRef(),
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

// HasMember reports whether the user is in the member set.
func (g *StudyGroup) HasMember(userID uint) bool {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return true
		}
	}
	return false
}
