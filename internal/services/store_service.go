package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	model "taskdeck.app/taskdeck/internal/models"
	repository "taskdeck.app/taskdeck/internal/repositories"
	"taskdeck.app/taskdeck/internal/storage"
)

// State is the controller's published view of the world. Subscribers
// receive a defensive copy after every mutation.
type State struct {
	User          *model.User
	Tasks         []model.Task
	SharedTasks   []model.Task
	Notifications []model.Notification
	SearchQuery   string
	Filters       model.Filters
	Loading       bool
}

// StoreService is the application state controller: the single in-memory
// cache of current view state. Every mutating command delegates to the
// repository or notification engine and then unconditionally reloads the
// canonical collections, so the cache can never diverge from the durable
// store as observed by this process.
type StoreService struct {
	mu            sync.Mutex
	state         State
	store         *storage.Store
	tasks         *repository.TaskRepository
	notifications *NotificationService
	analytics     *AnalyticsService

	subscribers  map[int]func(State)
	nextSubID    int
	refreshStop  chan struct{}
	refreshWG    sync.WaitGroup
	refreshOnce  sync.Once
	shutdownOnce sync.Once
	now          func() time.Time
}

func NewStoreService(
	store *storage.Store,
	tasks *repository.TaskRepository,
	notifications *NotificationService,
	analytics *AnalyticsService,
) *StoreService {
	return &StoreService{
		state: State{
			Tasks:         []model.Task{},
			SharedTasks:   []model.Task{},
			Notifications: []model.Notification{},
			Filters:       model.DefaultFilters(),
		},
		store:         store,
		tasks:         tasks,
		notifications: notifications,
		analytics:     analytics,
		subscribers:   make(map[int]func(State)),
		refreshStop:   make(chan struct{}),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Initialize is the idempotent bootstrap: seed the durable store on first
// run, then load user, tasks, shared tasks and notifications, and derive
// due-date reminders.
func (s *StoreService) Initialize(ctx context.Context) {
	if !s.store.Initialized(ctx) {
		seed(ctx, s.store, s.now())
	}

	s.mu.Lock()
	s.state.User = s.store.User(ctx)
	s.reloadLocked(ctx)
	s.mu.Unlock()
	s.publish()

	if user := s.CurrentUser(); user != nil {
		s.notifications.CheckDueTasks(ctx, user.ID)
		s.reloadNotifications(ctx)
	}
}

func (s *StoreService) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// Subscribe registers a state listener and returns its unsubscribe func.
func (s *StoreService) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *StoreService) CreateTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	user := s.CurrentUser()
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	s.setLoading(true)
	defer s.setLoading(false)

	task, err := s.tasks.Create(ctx, user.ID, draft)
	if err != nil {
		return nil, err
	}

	s.reload(ctx)
	return task, nil
}

// UpdateTask merges the patch and republishes. Share recipients of the
// task are told about the change.
func (s *StoreService) UpdateTask(ctx context.Context, taskID string, patch model.TaskPatch) (*model.Task, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	task, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	if task != nil && len(task.SharedWith) > 0 {
		s.notifications.NotifyTaskUpdated(ctx, task)
	}

	s.reload(ctx)
	return task, nil
}

func (s *StoreService) DeleteTask(ctx context.Context, taskID string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	deleted := s.tasks.Delete(ctx, taskID)
	if deleted {
		s.reload(ctx)
	}
	return deleted
}

// ShareTask grants the recipient read access and notifies them. Sharing an
// unknown task returns ErrTaskNotFound; sharing twice with the same user
// is a no-op.
func (s *StoreService) ShareTask(ctx context.Context, taskID, recipientID string) (*model.Task, error) {
	task := s.tasks.GetByID(ctx, taskID)
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}
	if task.SharedWithUser(recipientID) {
		return task, nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	sharedWith := append(task.SharedWith, recipientID)
	updated, err := s.tasks.Update(ctx, taskID, model.TaskPatch{SharedWith: &sharedWith})
	if err != nil {
		return nil, err
	}

	s.notifications.NotifyTaskShared(ctx, updated, recipientID)
	s.reload(ctx)
	return updated, nil
}

// GetTask resolves any task id with no permission check; the presentation
// layer renders shared links read-only.
func (s *StoreService) GetTask(ctx context.Context, taskID string) *model.Task {
	return s.tasks.GetByID(ctx, taskID)
}

func (s *StoreService) SetSearchQuery(query string) {
	s.mu.Lock()
	s.state.SearchQuery = query
	s.mu.Unlock()
	s.publish()
}

func (s *StoreService) SetFilters(patch model.FiltersPatch) {
	s.mu.Lock()
	if patch.Status != nil {
		s.state.Filters.Status = *patch.Status
	}
	if patch.Priority != nil {
		s.state.Filters.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		s.state.Filters.Tags = *patch.Tags
	}
	s.mu.Unlock()
	s.publish()
}

// FilteredTasks derives the visible task list from the cached state:
// free-text search first, then status, then priority, then tag membership
// (OR semantics). It never mutates the cached list.
func (s *StoreService) FilteredTasks() []model.Task {
	s.mu.Lock()
	tasks := append([]model.Task(nil), s.state.Tasks...)
	query := strings.TrimSpace(s.state.SearchQuery)
	filters := s.state.Filters
	s.mu.Unlock()

	filtered := tasks
	if query != "" {
		needle := strings.ToLower(query)
		filtered = filtered[:0]
		for _, task := range tasks {
			if taskMatchesQuery(task, needle) {
				filtered = append(filtered, task)
			}
		}
	}

	if filters.Status != model.FilterAll {
		filtered = keepTasks(filtered, func(t model.Task) bool {
			return string(t.Status) == filters.Status
		})
	}

	if filters.Priority != model.FilterAll {
		filtered = keepTasks(filtered, func(t model.Task) bool {
			return string(t.Priority) == filters.Priority
		})
	}

	if len(filters.Tags) > 0 {
		filtered = keepTasks(filtered, func(t model.Task) bool {
			for _, tag := range filters.Tags {
				if t.HasTag(tag) {
					return true
				}
			}
			return false
		})
	}

	return filtered
}

// SearchTasks runs a free-text search against the durable collection,
// bypassing the cached view. Blank queries return the full owned list.
func (s *StoreService) SearchTasks(ctx context.Context, query string) []model.Task {
	user := s.CurrentUser()
	if user == nil {
		return []model.Task{}
	}

	if strings.TrimSpace(query) == "" {
		return orEmpty(s.tasks.ListOwned(ctx, user.ID))
	}
	return orEmpty(s.tasks.Search(ctx, user.ID, query))
}

func (s *StoreService) MarkNotificationRead(ctx context.Context, notificationID string) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.notifications.MarkRead(ctx, notificationID)
	s.reloadNotifications(ctx)
}

func (s *StoreService) MarkAllNotificationsRead(ctx context.Context) {
	user := s.CurrentUser()
	if user == nil {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.notifications.MarkAllRead(ctx, user.ID)
	s.reloadNotifications(ctx)
}

func (s *StoreService) SharedTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.state.SharedTasks...)
}

func (s *StoreService) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.state.Notifications...)
}

// Analytics aggregates the current user's tasks over the lookback window.
// Without a signed-in user it returns the zero snapshot.
func (s *StoreService) Analytics(ctx context.Context, windowDays int) model.AnalyticsSnapshot {
	user := s.CurrentUser()
	if user == nil {
		return model.AnalyticsSnapshot{TasksByDay: []model.DayCount{}}
	}
	return s.analytics.Compute(ctx, user.ID, windowDays)
}

func (s *StoreService) UpdateUserProfile(ctx context.Context, patch model.UserPatch) *model.User {
	user := s.store.User(ctx)
	if user == nil {
		return nil
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Preferences != nil {
		user.Preferences = *patch.Preferences
	}
	s.store.SaveUser(ctx, user)

	s.mu.Lock()
	s.state.User = user
	s.mu.Unlock()
	s.publish()
	return user
}

// RefreshData reloads every collection and re-derives due notifications.
func (s *StoreService) RefreshData(ctx context.Context) {
	s.mu.Lock()
	s.state.User = s.store.User(ctx)
	s.reloadLocked(ctx)
	s.mu.Unlock()
	s.publish()

	if user := s.CurrentUser(); user != nil {
		s.notifications.CheckDueTasks(ctx, user.ID)
		s.reloadNotifications(ctx)
	}
}

// Export assembles the downloadable backup snapshot.
func (s *StoreService) Export(ctx context.Context) model.ExportSnapshot {
	user := s.CurrentUser()

	snapshot := model.ExportSnapshot{
		User:          user,
		Tasks:         []model.Task{},
		Notifications: []model.Notification{},
		ExportDate:    s.now(),
	}
	if user != nil {
		snapshot.Tasks = s.tasks.ListOwned(ctx, user.ID)
		snapshot.Notifications = s.notifications.List(ctx, user.ID)
	}
	return snapshot
}

// ClearData wipes every persisted collection and resets the view state.
func (s *StoreService) ClearData(ctx context.Context) {
	s.store.ClearAll(ctx)

	s.mu.Lock()
	s.state = State{
		Tasks:         []model.Task{},
		SharedTasks:   []model.Task{},
		Notifications: []model.Notification{},
		Filters:       model.DefaultFilters(),
	}
	s.mu.Unlock()
	s.publish()
}

// StartAutoRefresh runs the periodic refresh loop until Shutdown.
func (s *StoreService) StartAutoRefresh(interval time.Duration) {
	s.refreshOnce.Do(func() {
		s.refreshWG.Add(1)
		go s.refreshLoop(interval)
	})
}

func (s *StoreService) refreshLoop(interval time.Duration) {
	defer s.refreshWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshData(context.Background())
		case <-s.refreshStop:
			return
		}
	}
}

func (s *StoreService) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.refreshStop)
	})
	s.refreshWG.Wait()
	log.Println("state controller stopped")
}

func (s *StoreService) setLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
	s.publish()
}

func (s *StoreService) reload(ctx context.Context) {
	s.mu.Lock()
	s.reloadLocked(ctx)
	s.mu.Unlock()
	s.publish()
}

// reloadLocked refreshes the cached collections from the durable store.
// Caller holds s.mu.
func (s *StoreService) reloadLocked(ctx context.Context) {
	if s.state.User == nil {
		s.state.Tasks = []model.Task{}
		s.state.SharedTasks = []model.Task{}
		s.state.Notifications = []model.Notification{}
		return
	}

	userID := s.state.User.ID
	s.state.Tasks = orEmpty(s.tasks.ListOwned(ctx, userID))
	s.state.SharedTasks = orEmpty(s.tasks.ListSharedWith(ctx, userID))
	s.state.Notifications = orEmptyNotifications(s.notifications.List(ctx, userID))
}

func orEmpty(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func orEmptyNotifications(notifications []model.Notification) []model.Notification {
	if notifications == nil {
		return []model.Notification{}
	}
	return notifications
}

func (s *StoreService) reloadNotifications(ctx context.Context) {
	s.mu.Lock()
	if s.state.User != nil {
		s.state.Notifications = s.notifications.List(ctx, s.state.User.ID)
	}
	s.mu.Unlock()
	s.publish()
}

func (s *StoreService) publish() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	listeners := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (s *StoreService) snapshotLocked() State {
	snapshot := s.state
	snapshot.Tasks = append([]model.Task(nil), s.state.Tasks...)
	snapshot.SharedTasks = append([]model.Task(nil), s.state.SharedTasks...)
	snapshot.Notifications = append([]model.Notification(nil), s.state.Notifications...)
	snapshot.Filters.Tags = append([]string(nil), s.state.Filters.Tags...)
	return snapshot
}

func keepTasks(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	kept := tasks[:0]
	for _, task := range tasks {
		if keep(task) {
			kept = append(kept, task)
		}
	}
	return kept
}

func taskMatchesQuery(task model.Task, needle string) bool {
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
