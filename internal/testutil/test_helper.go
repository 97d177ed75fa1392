package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/gorm"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, name, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test User"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "hashed_password_123",
		Avatar:       "https://example.com/avatar.jpg",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestGroup creates a study group with the given creator as member
func (h *TestHelper) CreateTestGroup(id, creatorID uint, name string) *models.StudyGroup {
	if id == 0 {
		id = 1
	}
	if creatorID == 0 {
		creatorID = 1
	}
	if name == "" {
		name = "Test Group"
	}

	return &models.StudyGroup{
		ID:        id,
		Name:      name,
		CreatorID: creatorID,
		Members: []models.GroupMember{
			{GroupID: id, UserID: creatorID, JoinedAt: time.Now()},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestGoal creates an active goal for a group
func (h *TestHelper) CreateTestGoal(id, groupID uint, metric models.GoalMetric, target int64) *models.GroupGoal {
	if id == 0 {
		id = 1
	}
	if groupID == 0 {
		groupID = 1
	}
	if metric == "" {
		metric = models.MetricQuestionsSolved
	}
	if target == 0 {
		target = 10
	}

	return &models.GroupGoal{
		ID:           id,
		StudyGroupID: groupID,
		Title:        "Test Goal",
		Subjects:     []string{},
		Metric:       metric,
		Target:       target,
		IsActive:     true,
		Archived:     false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestActivity creates a ledger row with default values
func (h *TestHelper) CreateTestActivity(groupID, userID, questionID uint, timeSpent int64) *models.GroupMemberActivity {
	if groupID == 0 {
		groupID = 1
	}
	if userID == 0 {
		userID = 1
	}
	if questionID == 0 {
		questionID = 1
	}

	return &models.GroupMemberActivity{
		StudyGroupID: groupID,
		UserID:       userID,
		QuestionID:   questionID,
		Status:       models.StatusSolved,
		TimeSpent:    timeSpent,
		CreatedAt:    time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("PASSWORD_MIN_LENGTH", "10")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// GetRecordNotFoundError returns the error repositories yield for a miss
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
