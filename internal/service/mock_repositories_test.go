package service

import (
	"sort"
	"strings"
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"github.com/studyhubapp/studyhub-backend/internal/testutil"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation for tests
// It implements repository.UserRepositoryInterface.
type MockUserRepository struct {
	users  map[uint]*models.User
	emails map[string]*models.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		emails: make(map[string]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if _, ok := m.emails[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	m.emails[user.Email] = user
	return nil
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, testutil.GetRecordNotFoundError()
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	if u, ok := m.emails[email]; ok {
		return u, nil
	}
	return nil, testutil.GetRecordNotFoundError()
}

func (m *MockUserRepository) FindByEmails(emails []string) ([]models.User, error) {
	var out []models.User
	for _, e := range emails {
		if u, ok := m.emails[e]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// MockStudyGroupRepository is a mock implementation for tests
// It implements repository.StudyGroupRepositoryInterface. Membership rows
// live on the group structs so HasMember works on FindByID results.
type MockStudyGroupRepository struct {
	groups map[uint]*models.StudyGroup
	users  *MockUserRepository
	nextID uint
}

func NewMockStudyGroupRepository(users *MockUserRepository) *MockStudyGroupRepository {
	return &MockStudyGroupRepository{
		groups: make(map[uint]*models.StudyGroup),
		users:  users,
		nextID: 1,
	}
}

func (m *MockStudyGroupRepository) Create(group *models.StudyGroup) error {
	for _, g := range m.groups {
		if g.CreatorID == group.CreatorID {
			return gorm.ErrDuplicatedKey
		}
	}
	if group.ID == 0 {
		group.ID = m.nextID
		m.nextID++
	}
	m.groups[group.ID] = group
	return nil
}

func (m *MockStudyGroupRepository) FindByID(id uint) (*models.StudyGroup, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, testutil.GetRecordNotFoundError()
}

func (m *MockStudyGroupRepository) FindByCreator(creatorID uint) (*models.StudyGroup, error) {
	for _, g := range m.groups {
		if g.CreatorID == creatorID {
			return g, nil
		}
	}
	return nil, testutil.GetRecordNotFoundError()
}

func (m *MockStudyGroupRepository) FindAll() ([]models.StudyGroup, error) {
	var out []models.StudyGroup
	for _, g := range m.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (m *MockStudyGroupRepository) AddMember(groupID, userID uint) error {
	g, ok := m.groups[groupID]
	if !ok {
		return testutil.GetRecordNotFoundError()
	}
	for _, mem := range g.Members {
		if mem.UserID == userID {
			return gorm.ErrDuplicatedKey
		}
	}
	member := models.GroupMember{GroupID: groupID, UserID: userID, JoinedAt: time.Now()}
	if m.users != nil {
		if u, ok := m.users.users[userID]; ok {
			member.User = *u
		}
	}
	g.Members = append(g.Members, member)
	return nil
}

func (m *MockStudyGroupRepository) RemoveMember(groupID, userID uint) error {
	g, ok := m.groups[groupID]
	if !ok {
		return testutil.GetRecordNotFoundError()
	}
	for i, mem := range g.Members {
		if mem.UserID == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockStudyGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	g, ok := m.groups[groupID]
	if !ok {
		return false, nil
	}
	return g.HasMember(userID), nil
}

// MockGoalRepository is a mock implementation for tests
// It implements repository.GroupGoalRepositoryInterface.
type MockGoalRepository struct {
	goals  map[uint]*models.GroupGoal
	nextID uint
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		goals:  make(map[uint]*models.GroupGoal),
		nextID: 1,
	}
}

func (m *MockGoalRepository) Create(goal *models.GroupGoal) error {
	if goal.ID == 0 {
		goal.ID = m.nextID
		m.nextID++
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MockGoalRepository) FindActiveByGroup(groupID uint) (*models.GroupGoal, error) {
	for _, g := range m.goals {
		if g.StudyGroupID == groupID && g.IsActive && !g.Archived {
			return g, nil
		}
	}
	return nil, testutil.GetRecordNotFoundError()
}

func (m *MockGoalRepository) Save(goal *models.GroupGoal) error {
	if _, ok := m.goals[goal.ID]; !ok {
		return testutil.GetRecordNotFoundError()
	}
	m.goals[goal.ID] = goal
	return nil
}

// MockActivityRepository is a mock implementation for tests
// It implements repository.ActivityRepositoryInterface, including the
// composite uniqueness guard and the leaderboard aggregation.
type MockActivityRepository struct {
	activities []*models.GroupMemberActivity
	users      *MockUserRepository
	nextID     uint
}

func NewMockActivityRepository(users *MockUserRepository) *MockActivityRepository {
	return &MockActivityRepository{users: users, nextID: 1}
}

func (m *MockActivityRepository) Create(activity *models.GroupMemberActivity) error {
	for _, a := range m.activities {
		if a.StudyGroupID == activity.StudyGroupID && a.UserID == activity.UserID && a.QuestionID == activity.QuestionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if activity.ID == 0 {
		activity.ID = m.nextID
		m.nextID++
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	m.activities = append(m.activities, activity)
	return nil
}

func (m *MockActivityRepository) Exists(groupID, userID, questionID uint) (bool, error) {
	for _, a := range m.activities {
		if a.StudyGroupID == groupID && a.UserID == userID && a.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockActivityRepository) LeaderboardRows(groupID uint, metric models.GoalMetric, restrictStatus bool, offset, limit int) ([]repository.LeaderboardRow, error) {
	byUser := make(map[uint]*repository.LeaderboardRow)
	for _, a := range m.activities {
		if a.StudyGroupID != groupID {
			continue
		}
		if restrictStatus && a.Status != models.StatusSolved && a.Status != models.StatusCorrect {
			continue
		}
		row, ok := byUser[a.UserID]
		if !ok {
			row = &repository.LeaderboardRow{UserID: a.UserID}
			if m.users != nil {
				if u, uok := m.users.users[a.UserID]; uok {
					row.Name = u.Name
					row.Avatar = u.Avatar
				}
			}
			byUser[a.UserID] = row
		}
		row.QuestionsSolved++
		row.TimeSpent += a.TimeSpent
		if a.CreatedAt.After(row.LastActivityAt) {
			row.LastActivityAt = a.CreatedAt
		}
	}

	rows := make([]repository.LeaderboardRow, 0, len(byUser))
	for _, row := range byUser {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if metric == models.MetricTimeSpent {
			if rows[i].TimeSpent != rows[j].TimeSpent {
				return rows[i].TimeSpent > rows[j].TimeSpent
			}
			return rows[i].Name < rows[j].Name
		}
		if rows[i].QuestionsSolved != rows[j].QuestionsSolved {
			return rows[i].QuestionsSolved > rows[j].QuestionsSolved
		}
		if rows[i].TimeSpent != rows[j].TimeSpent {
			return rows[i].TimeSpent > rows[j].TimeSpent
		}
		return rows[i].Name < rows[j].Name
	})

	if offset >= len(rows) {
		return []repository.LeaderboardRow{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *MockActivityRepository) GroupTotals(groupID uint) (repository.GroupTotalsRow, error) {
	var totals repository.GroupTotalsRow
	for _, a := range m.activities {
		if a.StudyGroupID == groupID {
			totals.TotalQuestions++
			totals.TotalTime += a.TimeSpent
		}
	}
	return totals, nil
}

// MockStore is an in-memory cache.Store for tests. It records evictions so
// invalidation behavior can be asserted.
type MockStore struct {
	data            map[string][]byte
	deletedKeys     []string
	deletedPatterns []string
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Get(key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockStore) Set(key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *MockStore) Delete(key string) error {
	delete(m.data, key)
	m.deletedKeys = append(m.deletedKeys, key)
	return nil
}

func (m *MockStore) DeletePattern(pattern string) error {
	m.deletedPatterns = append(m.deletedPatterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}
