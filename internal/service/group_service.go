package service

import (
	"errors"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"github.com/studyhubapp/studyhub-backend/internal/validation"
	"gorm.io/gorm"
)

type GroupService struct {
	groupRepo repository.StudyGroupRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewGroupService(
	groupRepo repository.StudyGroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a study group with the caller as creator. A user may
// create at most one group; the pre-check read races with concurrent
// creations, the unique index on creator_id is the backstop. Member emails
// that resolve to no account are dropped silently.
func (s *GroupService) CreateGroup(creatorID uint, name, description string, memberEmails []string) (*models.StudyGroup, error) {
	if _, err := s.groupRepo.FindByCreator(creatorID); err == nil {
		return nil, ErrUserAlreadyCreator
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	emails := make([]string, 0, len(memberEmails))
	for _, e := range memberEmails {
		if normalized := validation.NormalizeEmail(e); normalized != "" {
			emails = append(emails, normalized)
		}
	}
	users, err := s.userRepo.FindByEmails(emails)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]uint, 0, len(users)+1)
	seen := make(map[uint]bool, len(users)+1)
	for i := range users {
		if !seen[users[i].ID] {
			seen[users[i].ID] = true
			memberIDs = append(memberIDs, users[i].ID)
		}
	}
	if !seen[creatorID] {
		memberIDs = append(memberIDs, creatorID)
	}

	group := &models.StudyGroup{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyCreator
		}
		return nil, err
	}

	for _, id := range memberIDs {
		if err := s.groupRepo.AddMember(group.ID, id); err != nil {
			return nil, err
		}
	}

	return s.groupRepo.FindByID(group.ID)
}

// AddMember resolves an email and appends the user to the group. Only the
// creator may add members; adding an existing member is a conflict, not a
// no-op.
func (s *GroupService) AddMember(creatorID, groupID uint, email string) (*models.StudyGroup, error) {
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

	user, err := s.userRepo.FindByEmail(validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(groupID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrUserAlreadyMember
	}

	if err := s.groupRepo.AddMember(groupID, user.ID); err != nil {
		return nil, err
	}

	return s.groupRepo.FindByID(groupID)
}

// JoinGroup adds the caller to an existing group.
func (s *GroupService) JoinGroup(userID, groupID uint) (*models.StudyGroup, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if group.HasMember(userID) {
		return nil, ErrUserAlreadyMember
	}

	if err := s.groupRepo.AddMember(groupID, userID); err != nil {
		return nil, err
	}

	return s.groupRepo.FindByID(groupID)
}

// LeaveGroup removes the caller from the member set. The creator owns the
// group and cannot leave it.
func (s *GroupService) LeaveGroup(userID, groupID uint) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	if group.CreatorID == userID {
		return ErrForbidden
	}
	if !group.HasMember(userID) {
		return ErrForbidden
	}

	return s.groupRepo.RemoveMember(groupID, userID)
}

func (s *GroupService) GetGroup(groupID uint) (*models.StudyGroup, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupService) ListGroups() ([]models.StudyGroup, error) {
	return s.groupRepo.FindAll()
}
