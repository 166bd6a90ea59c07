package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	model "taskdeck.app/taskdeck/internal/models"
	"taskdeck.app/taskdeck/internal/storage"
)

func newTestRepo(now time.Time) *TaskRepository {
	repo := NewTaskRepository(storage.NewStore(storage.NewMemoryBlobStore()))
	repo.now = func() time.Time { return now }
	return repo
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newTestRepo(now)

	task, err := repo.Create(context.Background(), "u1", model.TaskDraft{
		Title:    "Write report",
		DueDate:  now.Add(48 * time.Hour),
		Priority: model.PriorityHigh,
		Status:   model.StatusTodo,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "u1", task.OwnerID)
	assert.True(t, task.CreatedAt.Equal(now))
	assert.True(t, task.UpdatedAt.Equal(now))
	assert.Nil(t, task.CompletedAt)
	assert.NotNil(t, task.Tags)
	assert.NotNil(t, task.SharedWith)
}

func TestCreate_Validation(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	cases := []struct {
		name  string
		draft model.TaskDraft
		want  error
	}{
		{"empty title", model.TaskDraft{Title: "  "}, apperrors.ErrTitleRequired},
		{"title too long", model.TaskDraft{Title: strings.Repeat("x", 101)}, apperrors.ErrTitleTooLong},
		{"description too long", model.TaskDraft{Title: "ok", Description: strings.Repeat("x", 501)}, apperrors.ErrDescriptionTooLong},
		{"bad priority", model.TaskDraft{Title: "ok", Priority: "urgent"}, apperrors.ErrInvalidPriority},
		{"bad status", model.TaskDraft{Title: "ok", Status: "done"}, apperrors.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(ctx, "u1", tc.draft)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreate_DefaultsStatusAndPriority(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())

	task, err := repo.Create(context.Background(), "u1", model.TaskDraft{Title: "bare"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
}

func TestUpdate_CompletionStampsCompletedAt(t *testing.T) {
	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newTestRepo(created)
	ctx := context.Background()

	task, err := repo.Create(ctx, "u1", model.TaskDraft{Title: "Finish me"})
	require.NoError(t, err)

	completedAt := created.Add(time.Hour)
	repo.now = func() time.Time { return completedAt }

	status := model.StatusCompleted
	updated, err := repo.Update(ctx, task.ID, model.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(completedAt))
	assert.True(t, updated.UpdatedAt.Equal(*updated.CompletedAt))
}

func TestUpdate_CompletedAtSurvivesReopen(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	task, err := repo.Create(ctx, "u1", model.TaskDraft{Title: "Reopen me"})
	require.NoError(t, err)

	completed := model.StatusCompleted
	_, err = repo.Update(ctx, task.ID, model.TaskPatch{Status: &completed})
	require.NoError(t, err)

	todo := model.StatusTodo
	reopened, err := repo.Update(ctx, task.ID, model.TaskPatch{Status: &todo})
	require.NoError(t, err)

	assert.Equal(t, model.StatusTodo, reopened.Status)
	assert.NotNil(t, reopened.CompletedAt)
}

func TestUpdate_UnknownIDReturnsNil(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())

	title := "new title"
	task, err := repo.Update(context.Background(), "missing", model.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestDelete_Semantics(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	task, err := repo.Create(ctx, "u1", model.TaskDraft{Title: "Delete me"})
	require.NoError(t, err)

	assert.True(t, repo.Delete(ctx, task.ID))
	assert.Nil(t, repo.GetByID(ctx, task.ID))
	assert.False(t, repo.Delete(ctx, task.ID))
}

func TestGetByID_NoOwnershipCheck(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	task, err := repo.Create(ctx, "owner", model.TaskDraft{Title: "Unlisted"})
	require.NoError(t, err)

	// Any holder of the id can read the task.
	found := repo.GetByID(ctx, task.ID)
	require.NotNil(t, found)
	assert.Equal(t, "owner", found.OwnerID)
}

func TestListSharedWith(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	task, err := repo.Create(ctx, "owner", model.TaskDraft{Title: "Shared"})
	require.NoError(t, err)

	sharedWith := []string{"friend"}
	_, err = repo.Update(ctx, task.ID, model.TaskPatch{SharedWith: &sharedWith})
	require.NoError(t, err)

	shared := repo.ListSharedWith(ctx, "friend")
	require.Len(t, shared, 1)
	assert.Equal(t, task.ID, shared[0].ID)

	assert.Empty(t, repo.ListOwned(ctx, "friend"))
	assert.Empty(t, repo.ListSharedWith(ctx, "stranger"))
}

func TestSearch_CaseInsensitive(t *testing.T) {
	repo := newTestRepo(time.Now().UTC())
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", model.TaskDraft{Title: "Buy Milk"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", model.TaskDraft{Title: "Call dentist", Description: "About the MILK tooth"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", model.TaskDraft{Title: "Groceries", Tags: []string{"milk-run"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "someone-else", model.TaskDraft{Title: "milk the cows"})
	require.NoError(t, err)

	results := repo.Search(ctx, "u1", "milk")
	assert.Len(t, results, 3)
}
