package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "taskdeck.app/taskdeck/internal/models"
	"taskdeck.app/taskdeck/internal/storage"
)

// seed writes first-run demo data so a fresh install has something to
// show: one user and a small spread of tasks across statuses and due
// dates. Runs once; the initialized flag guards re-entry.
func seed(ctx context.Context, store *storage.Store, now time.Time) {
	user := &model.User{
		ID:        "user-123",
		Email:     "user@example.com",
		FullName:  "João Silva",
		CreatedAt: now,
		Preferences: model.Preferences{
			Language:      model.LanguagePT,
			Notifications: true,
		},
	}

	completedAt := now
	tasks := []model.Task{
		{
			ID:          uuid.NewString(),
			Title:       "Finish project report",
			Description: "Write up the remaining sections and review",
			DueDate:     now.Add(3 * 24 * time.Hour),
			Priority:    model.PriorityHigh,
			Status:      model.StatusInProgress,
			Tags:        []string{"work", "writing"},
			OwnerID:     user.ID,
			SharedWith:  []string{},
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Study Go generics",
			Description: "Review type parameters and constraints",
			DueDate:     now.Add(7 * 24 * time.Hour),
			Priority:    model.PriorityMedium,
			Status:      model.StatusTodo,
			Tags:        []string{"study", "programming"},
			OwnerID:     user.ID,
			SharedWith:  []string{},
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Gym session",
			Description: "Three workouts this week",
			DueDate:     now.Add(-24 * time.Hour),
			Priority:    model.PriorityMedium,
			Status:      model.StatusCompleted,
			Tags:        []string{"health", "fitness"},
			OwnerID:     user.ID,
			SharedWith:  []string{},
			CreatedAt:   now.Add(-5 * 24 * time.Hour),
			UpdatedAt:   now,
			CompletedAt: &completedAt,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Team meeting",
			Description: "Product roadmap discussion",
			DueDate:     now.Add(24 * time.Hour),
			Priority:    model.PriorityHigh,
			Status:      model.StatusTodo,
			Tags:        []string{"work", "meeting"},
			OwnerID:     user.ID,
			SharedWith:  []string{"user-456"},
			CreatedAt:   now.Add(-3 * 24 * time.Hour),
			UpdatedAt:   now,
		},
	}

	store.SaveUser(ctx, user)
	store.SaveTasks(ctx, tasks)
	store.SaveNotifications(ctx, []model.Notification{})
	store.MarkInitialized(ctx)
}
