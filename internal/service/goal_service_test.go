package service

import (
	"errors"
	"testing"

	"github.com/studyhubapp/studyhub-backend/internal/cache"
	"github.com/studyhubapp/studyhub-backend/internal/models"
)

func newGoalServiceFixture() (*GoalService, *MockStudyGroupRepository, *MockGoalRepository, *MockStore) {
	userRepo := NewMockUserRepository()
	seedUser(userRepo, 1, "Alice", "alice@example.com")
	seedUser(userRepo, 2, "Bob", "bob@example.com")

	groupRepo := NewMockStudyGroupRepository(userRepo)
	group := &models.StudyGroup{Name: "Group", CreatorID: 1}
	groupRepo.Create(group)
	groupRepo.AddMember(group.ID, 1)
	groupRepo.AddMember(group.ID, 2)

	goalRepo := NewMockGoalRepository()
	store := NewMockStore()
	svc := NewGoalService(groupRepo, goalRepo, cache.NewGroupStatsCache(store))
	return svc, groupRepo, goalRepo, store
}

func TestAddGoal(t *testing.T) {
	svc, _, _, _ := newGoalServiceFixture()

	goal, err := svc.AddGoal(1, 1, AddGoalInput{
		Title:  "Solve 50",
		Metric: models.MetricQuestionsSolved,
		Target: 50,
	})
	if err != nil {
		t.Fatalf("AddGoal error = %v", err)
	}
	if !goal.IsActive || goal.Archived {
		t.Errorf("new goal IsActive=%v Archived=%v, want active and not archived", goal.IsActive, goal.Archived)
	}
	if goal.Subjects == nil {
		t.Errorf("Subjects is nil, want empty slice")
	}
}

func TestAddGoalErrors(t *testing.T) {
	svc, _, _, _ := newGoalServiceFixture()

	if _, err := svc.AddGoal(1, 1, AddGoalInput{Title: "First", Metric: models.MetricTimeSpent, Target: 120}); err != nil {
		t.Fatalf("AddGoal error = %v", err)
	}

	tests := []struct {
		name     string
		callerID uint
		groupID  uint
		wantErr  error
	}{
		{"Group not found", 1, 999, ErrGroupNotFound},
		{"Not the creator", 2, 1, ErrForbidden},
		{"Active goal exists", 1, 1, ErrActiveGoalExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddGoal(tt.callerID, tt.groupID, AddGoalInput{Title: "Another", Metric: models.MetricQuestionsSolved, Target: 5})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddGoal error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type flakyGoalRepo struct {
	*MockGoalRepository
	findErr error
}

func (r *flakyGoalRepo) FindActiveByGroup(groupID uint) (*models.GroupGoal, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.MockGoalRepository.FindActiveByGroup(groupID)
}

func TestAddGoalStoreErrorAborts(t *testing.T) {
	userRepo := NewMockUserRepository()
	seedUser(userRepo, 1, "Alice", "alice@example.com")
	groupRepo := NewMockStudyGroupRepository(userRepo)
	groupRepo.Create(&models.StudyGroup{Name: "Group", CreatorID: 1})
	groupRepo.AddMember(1, 1)

	goalRepo := &flakyGoalRepo{MockGoalRepository: NewMockGoalRepository()}
	svc := NewGoalService(groupRepo, goalRepo, cache.NewGroupStatsCache(NewMockStore()))

	if _, err := svc.AddGoal(1, 1, AddGoalInput{Title: "First", Metric: models.MetricQuestionsSolved, Target: 10}); err != nil {
		t.Fatalf("AddGoal error = %v", err)
	}

	// A transient read failure must not be taken as "no active goal": a
	// second create here would leave two active non-archived goals.
	readErr := errors.New("connection reset by peer")
	goalRepo.findErr = readErr
	if _, err := svc.AddGoal(1, 1, AddGoalInput{Title: "Second", Metric: models.MetricQuestionsSolved, Target: 5}); !errors.Is(err, readErr) {
		t.Fatalf("AddGoal error = %v, want the store error", err)
	}

	active := 0
	for _, g := range goalRepo.goals {
		if g.IsActive && !g.Archived {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active non-archived goals = %d, want 1", active)
	}
}

func TestAddGoalInvalidatesStats(t *testing.T) {
	svc, _, _, store := newGoalServiceFixture()
	store.data["group:1:leaderboard:questionsSolved::p1:l10"] = []byte(`{}`)
	store.data["group:1:progress"] = []byte(`{}`)

	if _, err := svc.AddGoal(1, 1, AddGoalInput{Title: "Goal", Metric: models.MetricQuestionsSolved, Target: 10}); err != nil {
		t.Fatalf("AddGoal error = %v", err)
	}
	if len(store.data) != 0 {
		t.Errorf("stats caches survived a successful AddGoal: %v", store.data)
	}

	// The eviction also runs when the call fails.
	store.data["group:1:progress"] = []byte(`{}`)
	if _, err := svc.AddGoal(1, 1, AddGoalInput{Title: "Second", Metric: models.MetricQuestionsSolved, Target: 10}); !errors.Is(err, ErrActiveGoalExists) {
		t.Fatalf("AddGoal error = %v, want ErrActiveGoalExists", err)
	}
	if _, ok := store.data["group:1:progress"]; ok {
		t.Errorf("progress cache survived a failed AddGoal")
	}
}
