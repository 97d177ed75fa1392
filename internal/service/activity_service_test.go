package service

import (
	"errors"
	"testing"
	"time"

	"github.com/studyhubapp/studyhub-backend/internal/cache"
	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/testutil"
)

func newActivityServiceFixture(t *testing.T) (*ActivityService, *MockGoalRepository, *MockActivityRepository, *MockStore) {
	helper := testutil.NewTestHelper(t)
	userRepo := NewMockUserRepository()
	seedUser(userRepo, 1, "Alice", "alice@example.com")
	seedUser(userRepo, 2, "Bob", "bob@example.com")

	groupRepo := NewMockStudyGroupRepository(userRepo)
	groupRepo.Create(helper.CreateTestGroup(1, 1, "Group"))
	groupRepo.AddMember(1, 2)

	goalRepo := NewMockGoalRepository()
	activityRepo := NewMockActivityRepository(userRepo)
	store := NewMockStore()
	svc := NewActivityService(groupRepo, goalRepo, activityRepo, cache.NewGroupStatsCache(store))
	return svc, goalRepo, activityRepo, store
}

func activeGoal(t *testing.T, goalRepo *MockGoalRepository, groupID uint, deadline *time.Time) *models.GroupGoal {
	goal := testutil.NewTestHelper(t).CreateTestGoal(0, groupID, models.MetricQuestionsSolved, 10)
	goal.Deadline = deadline
	goalRepo.Create(goal)
	return goal
}

func TestRecordActivity(t *testing.T) {
	svc, goalRepo, activityRepo, _ := newActivityServiceFixture(t)
	activeGoal(t, goalRepo, 1, nil)

	activity, err := svc.RecordActivity(2, 1, 42, models.StatusSolved, 300)
	if err != nil {
		t.Fatalf("RecordActivity error = %v", err)
	}
	if activity.QuestionID != 42 || activity.TimeSpent != 300 {
		t.Errorf("recorded activity = %+v", activity)
	}
	if len(activityRepo.activities) != 1 {
		t.Errorf("ledger has %d rows, want 1", len(activityRepo.activities))
	}
}

func TestRecordActivityErrors(t *testing.T) {
	svc, goalRepo, _, _ := newActivityServiceFixture(t)

	// No goal yet.
	if _, err := svc.RecordActivity(1, 1, 1, models.StatusSolved, 10); !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("RecordActivity error = %v, want ErrNoActiveGoal", err)
	}

	activeGoal(t, goalRepo, 1, nil)

	tests := []struct {
		name       string
		userID     uint
		groupID    uint
		questionID uint
		wantErr    error
	}{
		{"Group not found", 1, 999, 1, ErrGroupNotFound},
		{"Not a member", 99, 1, 1, ErrForbidden},
		{"Success", 1, 1, 7, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordActivity(tt.userID, tt.groupID, tt.questionID, models.StatusSolved, 10)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordActivity error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordActivityDuplicate(t *testing.T) {
	svc, goalRepo, activityRepo, _ := newActivityServiceFixture(t)
	activeGoal(t, goalRepo, 1, nil)

	if _, err := svc.RecordActivity(2, 1, 42, models.StatusSolved, 120); err != nil {
		t.Fatalf("first RecordActivity error = %v", err)
	}
	// Same question again, even with different status and time.
	if _, err := svc.RecordActivity(2, 1, 42, models.StatusCorrect, 999); !errors.Is(err, ErrDuplicateActivity) {
		t.Errorf("duplicate RecordActivity error = %v, want ErrDuplicateActivity", err)
	}
	if len(activityRepo.activities) != 1 {
		t.Errorf("ledger has %d rows after duplicate, want 1", len(activityRepo.activities))
	}

	// A different member may record the same question.
	if _, err := svc.RecordActivity(1, 1, 42, models.StatusSolved, 60); err != nil {
		t.Errorf("other member RecordActivity error = %v", err)
	}
}

func TestRecordActivityExpiredGoal(t *testing.T) {
	svc, goalRepo, activityRepo, _ := newActivityServiceFixture(t)
	deadline := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	goal := activeGoal(t, goalRepo, 1, &deadline)

	svc.now = func() time.Time { return deadline.Add(time.Hour) }

	_, err := svc.RecordActivity(1, 1, 5, models.StatusSolved, 30)
	if !errors.Is(err, ErrGoalExpired) {
		t.Fatalf("RecordActivity error = %v, want ErrGoalExpired", err)
	}
	// The archival persisted even though the call failed.
	if goal.IsActive || !goal.Archived {
		t.Errorf("goal IsActive=%v Archived=%v after expiry, want archived", goal.IsActive, goal.Archived)
	}
	if len(activityRepo.activities) != 0 {
		t.Errorf("ledger has %d rows after expired-goal attempt, want 0", len(activityRepo.activities))
	}

	// The group now has no active goal.
	if _, err := svc.RecordActivity(1, 1, 5, models.StatusSolved, 30); !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("RecordActivity after expiry error = %v, want ErrNoActiveGoal", err)
	}
}

func TestRecordActivityInvalidatesStats(t *testing.T) {
	svc, goalRepo, _, store := newActivityServiceFixture(t)
	activeGoal(t, goalRepo, 1, nil)

	store.data["group:1:leaderboard:timeSpent::p1:l10"] = []byte(`{}`)
	store.data["group:1:progress"] = []byte(`{}`)

	if _, err := svc.RecordActivity(1, 1, 3, models.StatusSolved, 45); err != nil {
		t.Fatalf("RecordActivity error = %v", err)
	}
	if len(store.data) != 0 {
		t.Errorf("stats caches survived a recorded activity: %v", store.data)
	}

	// Eviction happens even when the attempt is rejected.
	store.data["group:1:progress"] = []byte(`{}`)
	if _, err := svc.RecordActivity(1, 1, 3, models.StatusSolved, 45); !errors.Is(err, ErrDuplicateActivity) {
		t.Fatalf("RecordActivity error = %v, want ErrDuplicateActivity", err)
	}
	if _, ok := store.data["group:1:progress"]; ok {
		t.Errorf("progress cache survived a failed RecordActivity")
	}
}
