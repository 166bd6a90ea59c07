package services

import (
	"context"
	"time"

	model "taskdeck.app/taskdeck/internal/models"
	repository "taskdeck.app/taskdeck/internal/repositories"
)

const defaultWindowDays = 30

// AnalyticsService aggregates windowed productivity statistics over one
// user's owned tasks.
type AnalyticsService struct {
	tasks *repository.TaskRepository
	now   func() time.Time
}

func NewAnalyticsService(tasks *repository.TaskRepository) *AnalyticsService {
	return &AnalyticsService{
		tasks: tasks,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Compute filters the user's tasks to those created inside the lookback
// window and aggregates totals, the priority histogram and per-day
// created/completed counts. TasksByDay spans the last windowDays calendar
// days including today, in ascending order.
func (s *AnalyticsService) Compute(ctx context.Context, userID string, windowDays int) model.AnalyticsSnapshot {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	now := s.now()
	windowStart := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	var filtered []model.Task
	for _, task := range s.tasks.ListOwned(ctx, userID) {
		if !task.CreatedAt.Before(windowStart) {
			filtered = append(filtered, task)
		}
	}

	snapshot := model.AnalyticsSnapshot{
		Total:      len(filtered),
		TasksByDay: make([]model.DayCount, 0, windowDays),
	}

	createdByDay := make(map[string]int)
	completedByDay := make(map[string]int)

	for _, task := range filtered {
		if task.Status == model.StatusCompleted {
			snapshot.Completed++
		} else {
			snapshot.Pending++
			if task.DueDate.Before(now) {
				snapshot.Overdue++
			}
		}

		switch task.Priority {
		case model.PriorityHigh:
			snapshot.ByPriority.High++
		case model.PriorityMedium:
			snapshot.ByPriority.Medium++
		case model.PriorityLow:
			snapshot.ByPriority.Low++
		}

		createdByDay[dateKey(task.CreatedAt)]++
		if task.CompletedAt != nil {
			completedByDay[dateKey(*task.CompletedAt)]++
		}
	}

	if snapshot.Total > 0 {
		snapshot.CompletionRate = float64(snapshot.Completed) / float64(snapshot.Total) * 100
	}

	for i := windowDays - 1; i >= 0; i-- {
		day := dateKey(now.AddDate(0, 0, -i))
		snapshot.TasksByDay = append(snapshot.TasksByDay, model.DayCount{
			Date:      day,
			Created:   createdByDay[day],
			Completed: completedByDay[day],
		})
	}

	return snapshot
}
