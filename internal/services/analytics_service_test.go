package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "taskdeck.app/taskdeck/internal/models"
	repository "taskdeck.app/taskdeck/internal/repositories"
	"taskdeck.app/taskdeck/internal/storage"
)

func newAnalyticsFixture(now time.Time) (*storage.Store, *AnalyticsService) {
	store := storage.NewStore(storage.NewMemoryBlobStore())
	service := NewAnalyticsService(repository.NewTaskRepository(store))
	service.now = func() time.Time { return now }
	return store, service
}

func analyticsTask(id, owner string, priority model.TaskPriority, status model.TaskStatus, created, due time.Time, completed *time.Time) model.Task {
	return model.Task{
		ID:          id,
		Title:       "Task " + id,
		DueDate:     due,
		Priority:    priority,
		Status:      status,
		Tags:        []string{},
		OwnerID:     owner,
		SharedWith:  []string{},
		CreatedAt:   created,
		UpdatedAt:   created,
		CompletedAt: completed,
	}
}

func TestCompute_EmptyWindowHasZeroCompletionRate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	_, service := newAnalyticsFixture(now)

	snapshot := service.Compute(context.Background(), "u1", 30)

	assert.Zero(t, snapshot.Total)
	assert.Zero(t, snapshot.CompletionRate)
	assert.Len(t, snapshot.TasksByDay, 30)
}

func TestCompute_PriorityHistogram(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store, service := newAnalyticsFixture(now)
	ctx := context.Background()

	created := now.Add(-24 * time.Hour)
	due := now.Add(24 * time.Hour)
	store.SaveTasks(ctx, []model.Task{
		analyticsTask("a", "u1", model.PriorityHigh, model.StatusTodo, created, due, nil),
		analyticsTask("b", "u1", model.PriorityHigh, model.StatusTodo, created, due, nil),
		analyticsTask("c", "u1", model.PriorityLow, model.StatusTodo, created, due, nil),
	})

	snapshot := service.Compute(ctx, "u1", 30)

	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, model.PriorityBreakdown{High: 2, Medium: 0, Low: 1}, snapshot.ByPriority)
}

func TestCompute_CompletionRateAndOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store, service := newAnalyticsFixture(now)
	ctx := context.Background()

	created := now.Add(-48 * time.Hour)
	completedAt := now.Add(-24 * time.Hour)
	store.SaveTasks(ctx, []model.Task{
		analyticsTask("done", "u1", model.PriorityHigh, model.StatusCompleted, created, now.Add(-30*time.Hour), &completedAt),
		analyticsTask("late", "u1", model.PriorityLow, model.StatusTodo, created, now.Add(-time.Hour), nil),
		analyticsTask("open", "u1", model.PriorityMedium, model.StatusInProgress, created, now.Add(time.Hour), nil),
		analyticsTask("ancient", "u1", model.PriorityLow, model.StatusTodo, now.Add(-31*24*time.Hour), now, nil),
	})

	snapshot := service.Compute(ctx, "u1", 30)

	// "ancient" falls outside the 30-day window.
	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 1, snapshot.Completed)
	assert.Equal(t, 2, snapshot.Pending)
	assert.Equal(t, 1, snapshot.Overdue)
	assert.InDelta(t, 100.0/3.0, snapshot.CompletionRate, 0.001)
}

func TestCompute_TasksByDayAscendingWithCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store, service := newAnalyticsFixture(now)
	ctx := context.Background()

	yesterday := now.Add(-24 * time.Hour)
	completedToday := now.Add(-time.Hour)
	store.SaveTasks(ctx, []model.Task{
		analyticsTask("a", "u1", model.PriorityMedium, model.StatusCompleted, yesterday, now, &completedToday),
		analyticsTask("b", "u1", model.PriorityMedium, model.StatusTodo, now, now.Add(24*time.Hour), nil),
	})

	snapshot := service.Compute(ctx, "u1", 7)
	require.Len(t, snapshot.TasksByDay, 7)

	last := snapshot.TasksByDay[6]
	assert.Equal(t, "2025-06-15", last.Date)
	assert.Equal(t, 1, last.Created)
	assert.Equal(t, 1, last.Completed)

	prior := snapshot.TasksByDay[5]
	assert.Equal(t, "2025-06-14", prior.Date)
	assert.Equal(t, 1, prior.Created)
	assert.Equal(t, 0, prior.Completed)

	for i := 1; i < len(snapshot.TasksByDay); i++ {
		assert.Less(t, snapshot.TasksByDay[i-1].Date, snapshot.TasksByDay[i].Date)
	}
}

func TestCompute_DefaultsWindowTo30Days(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	_, service := newAnalyticsFixture(now)

	snapshot := service.Compute(context.Background(), "u1", 0)
	assert.Len(t, snapshot.TasksByDay, 30)
}

func TestCompute_IgnoresOtherUsersTasks(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store, service := newAnalyticsFixture(now)
	ctx := context.Background()

	store.SaveTasks(ctx, []model.Task{
		analyticsTask("mine", "u1", model.PriorityHigh, model.StatusTodo, now, now, nil),
		analyticsTask("theirs", "u2", model.PriorityHigh, model.StatusTodo, now, now, nil),
	})

	snapshot := service.Compute(ctx, "u1", 30)
	assert.Equal(t, 1, snapshot.Total)
}
