package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	model "taskdeck.app/taskdeck/internal/models"
)

// Collection keys in the durable store. Each value is one JSON blob.
const (
	TasksKey         = "task_manager_tasks"
	UserKey          = "task_manager_user"
	NotificationsKey = "task_manager_notifications"
	InitializedKey   = "task_manager_initialized"
	CredentialsKey   = "task_manager_auth_users"
)

// Store is the durable store adapter: it reads and writes whole typed
// collections through a BlobStore. Storage failures are logged and degrade
// to empty-but-valid results; callers never see an error from here.
type Store struct {
	blobs BlobStore
}

func NewStore(blobs BlobStore) *Store {
	return &Store{blobs: blobs}
}

func (s *Store) Tasks(ctx context.Context) []model.Task {
	var tasks []model.Task
	if !s.read(ctx, TasksKey, &tasks) || tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) {
	s.write(ctx, TasksKey, tasks)
}

func (s *Store) User(ctx context.Context) *model.User {
	var user model.User
	if !s.read(ctx, UserKey, &user) {
		return nil
	}
	return &user
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) {
	s.write(ctx, UserKey, user)
}

func (s *Store) Notifications(ctx context.Context) []model.Notification {
	var notifications []model.Notification
	if !s.read(ctx, NotificationsKey, &notifications) || notifications == nil {
		return []model.Notification{}
	}
	return notifications
}

func (s *Store) SaveNotifications(ctx context.Context, notifications []model.Notification) {
	s.write(ctx, NotificationsKey, notifications)
}

func (s *Store) Credentials(ctx context.Context) map[string]model.Credential {
	var credentials map[string]model.Credential
	if !s.read(ctx, CredentialsKey, &credentials) || credentials == nil {
		return map[string]model.Credential{}
	}
	return credentials
}

func (s *Store) SaveCredentials(ctx context.Context, credentials map[string]model.Credential) {
	s.write(ctx, CredentialsKey, credentials)
}

func (s *Store) Initialized(ctx context.Context) bool {
	var initialized bool
	return s.read(ctx, InitializedKey, &initialized) && initialized
}

func (s *Store) MarkInitialized(ctx context.Context) {
	s.write(ctx, InitializedKey, true)
}

// ClearAll wipes every collection this adapter owns.
func (s *Store) ClearAll(ctx context.Context) {
	for _, key := range []string{TasksKey, UserKey, NotificationsKey, InitializedKey, CredentialsKey} {
		if err := s.blobs.Remove(ctx, key); err != nil {
			log.Printf("storage: failed to remove %s: %v", key, err)
		}
	}
}

func (s *Store) read(ctx context.Context, key string, out any) bool {
	value, err := s.blobs.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("storage: failed to read %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(value, out); err != nil {
		log.Printf("storage: corrupt blob at %s: %v", key, err)
		return false
	}
	return true
}

func (s *Store) write(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: failed to encode %s: %v", key, err)
		return
	}

	if err := s.blobs.Set(ctx, key, encoded); err != nil {
		log.Printf("storage: failed to write %s: %v", key, err)
	}
}
