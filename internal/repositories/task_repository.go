package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	model "taskdeck.app/taskdeck/internal/models"
	"taskdeck.app/taskdeck/internal/storage"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// TaskRepository owns the task collection. It holds no cache: every
// operation re-reads the full collection through the store adapter,
// mutates in memory, and writes the full collection back.
type TaskRepository struct {
	store *storage.Store
	now   func() time.Time
}

func NewTaskRepository(store *storage.Store) *TaskRepository {
	return &TaskRepository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *TaskRepository) ListOwned(ctx context.Context, userID string) []model.Task {
	var owned []model.Task
	for _, task := range r.store.Tasks(ctx) {
		if task.OwnerID == userID {
			owned = append(owned, task)
		}
	}
	return owned
}

func (r *TaskRepository) ListSharedWith(ctx context.Context, userID string) []model.Task {
	var shared []model.Task
	for _, task := range r.store.Tasks(ctx) {
		if task.SharedWithUser(userID) {
			shared = append(shared, task)
		}
	}
	return shared
}

// GetByID resolves any known id with no ownership check: the id itself is
// the read capability (unlisted-link sharing). Returns nil when not found.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) *model.Task {
	for _, task := range r.store.Tasks(ctx) {
		if task.ID == taskID {
			found := task
			return &found
		}
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, ownerID string, draft model.TaskDraft) (*model.Task, error) {
	if draft.Status == "" {
		draft.Status = model.StatusTodo
	}
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := r.now()
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      draft.Status,
		Tags:        normalizeTags(draft.Tags),
		OwnerID:     ownerID,
		SharedWith:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == model.StatusCompleted {
		completedAt := now
		task.CompletedAt = &completedAt
	}

	tasks := append(r.store.Tasks(ctx), task)
	r.store.SaveTasks(ctx, tasks)

	return &task, nil
}

// Update merges the patch into the stored record and stamps UpdatedAt. When
// the patch sets status to completed, CompletedAt is stamped with the same
// instant; it is never cleared by later transitions. Returns nil when the
// id does not exist.
func (r *TaskRepository) Update(ctx context.Context, taskID string, patch model.TaskPatch) (*model.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	tasks := r.store.Tasks(ctx)
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}

		applyPatch(&tasks[i], patch, r.now())
		r.store.SaveTasks(ctx, tasks)

		updated := tasks[i]
		return &updated, nil
	}

	return nil, nil
}

// Delete reports whether a record was removed; an unknown id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) bool {
	tasks := r.store.Tasks(ctx)
	remaining := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != taskID {
			remaining = append(remaining, task)
		}
	}

	if len(remaining) == len(tasks) {
		return false
	}

	r.store.SaveTasks(ctx, remaining)
	return true
}

// Search matches the query case-insensitively against title, description
// and tags, restricted to tasks owned by userID.
func (r *TaskRepository) Search(ctx context.Context, userID, query string) []model.Task {
	needle := strings.ToLower(query)

	var matched []model.Task
	for _, task := range r.ListOwned(ctx, userID) {
		if taskMatches(task, needle) {
			matched = append(matched, task)
		}
	}
	return matched
}

func taskMatches(task model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func applyPatch(task *model.Task, patch model.TaskPatch, now time.Time) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
		if *patch.Status == model.StatusCompleted {
			completedAt := now
			task.CompletedAt = &completedAt
		}
	}
	if patch.Tags != nil {
		task.Tags = normalizeTags(*patch.Tags)
	}
	if patch.SharedWith != nil {
		task.SharedWith = *patch.SharedWith
	}
	task.UpdatedAt = now
}

func validateDraft(draft model.TaskDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if len(draft.Title) > maxTitleLength {
		return apperrors.ErrTitleTooLong
	}
	if len(draft.Description) > maxDescriptionLength {
		return apperrors.ErrDescriptionTooLong
	}
	if !draft.Priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	if !draft.Status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

func validatePatch(patch model.TaskPatch) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return apperrors.ErrTitleRequired
		}
		if len(*patch.Title) > maxTitleLength {
			return apperrors.ErrTitleTooLong
		}
	}
	if patch.Description != nil && len(*patch.Description) > maxDescriptionLength {
		return apperrors.ErrDescriptionTooLong
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
