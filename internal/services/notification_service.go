package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	model "taskdeck.app/taskdeck/internal/models"
	repository "taskdeck.app/taskdeck/internal/repositories"
	"taskdeck.app/taskdeck/internal/storage"
)

const dueSoonHorizon = 24 * time.Hour

// NotificationService derives reminders from task state and owns the
// notification collection. Derivation is idempotent per task per calendar
// day: duplicates are suppressed by date-string equality, not a rolling
// 24h window.
type NotificationService struct {
	store *storage.Store
	tasks *repository.TaskRepository
	now   func() time.Time
}

func NewNotificationService(store *storage.Store, tasks *repository.TaskRepository) *NotificationService {
	return &NotificationService{
		store: store,
		tasks: tasks,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CheckDueTasks scans the user's open tasks and creates one task_due
// notification per qualifying task per day. A task that is due soon today
// and overdue tomorrow legitimately produces one notification on each day.
func (s *NotificationService) CheckDueTasks(ctx context.Context, userID string) {
	now := s.now()
	horizon := now.Add(dueSoonHorizon)
	today := dateKey(now)

	notifications := s.store.Notifications(ctx)

	sentToday := make(map[string]bool)
	for _, n := range notifications {
		if n.Type == model.NotificationTaskDue && n.TaskID != "" && dateKey(n.CreatedAt) == today {
			sentToday[n.TaskID] = true
		}
	}

	created := false
	for _, task := range s.tasks.ListOwned(ctx, userID) {
		if task.Status == model.StatusCompleted || sentToday[task.ID] {
			continue
		}

		var title, message string
		switch {
		case task.DueDate.After(now) && !task.DueDate.After(horizon):
			title = "Task due soon"
			message = fmt.Sprintf("Task %q is due %s", task.Title, humanize.RelTime(task.DueDate, now, "ago", "from now"))
		case task.DueDate.Before(now):
			title = "Task overdue"
			message = fmt.Sprintf("Task %q was due %s", task.Title, humanize.RelTime(task.DueDate, now, "ago", "from now"))
		default:
			continue
		}

		notifications = append(notifications, model.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      model.NotificationTaskDue,
			TaskID:    task.ID,
			CreatedAt: now,
		})
		created = true
	}

	if created {
		s.store.SaveNotifications(ctx, notifications)
	}
}

// NotifyTaskShared tells the recipient a task was shared with them.
func (s *NotificationService) NotifyTaskShared(ctx context.Context, task *model.Task, recipientID string) {
	s.add(ctx, model.Notification{
		UserID:  recipientID,
		Title:   "Task shared with you",
		Message: fmt.Sprintf("Task %q was shared with you", task.Title),
		Type:    model.NotificationTaskShared,
		TaskID:  task.ID,
	})
}

// NotifyTaskUpdated tells share recipients an already-shared task changed.
func (s *NotificationService) NotifyTaskUpdated(ctx context.Context, task *model.Task) {
	for _, recipientID := range task.SharedWith {
		s.add(ctx, model.Notification{
			UserID:  recipientID,
			Title:   "Shared task updated",
			Message: fmt.Sprintf("Task %q was updated", task.Title),
			Type:    model.NotificationTaskUpdated,
			TaskID:  task.ID,
		})
	}
}

func (s *NotificationService) add(ctx context.Context, notification model.Notification) {
	notification.ID = uuid.NewString()
	notification.CreatedAt = s.now()

	notifications := append(s.store.Notifications(ctx), notification)
	s.store.SaveNotifications(ctx, notifications)
}

// MarkRead flips the read flag; an unknown id is a silent no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) {
	notifications := s.store.Notifications(ctx)
	for i := range notifications {
		if notifications[i].ID == notificationID {
			notifications[i].Read = true
			s.store.SaveNotifications(ctx, notifications)
			return
		}
	}
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) {
	notifications := s.store.Notifications(ctx)
	for i := range notifications {
		if notifications[i].UserID == userID {
			notifications[i].Read = true
		}
	}
	s.store.SaveNotifications(ctx, notifications)
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) []model.Notification {
	var listed []model.Notification
	for _, n := range s.store.Notifications(ctx) {
		if n.UserID == userID {
			listed = append(listed, n)
		}
	}

	sort.Slice(listed, func(i, j int) bool {
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})
	return listed
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
