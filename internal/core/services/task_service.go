package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/core/taskview"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

type taskService struct {
	repo         ports.TaskRepository
	timelineRepo ports.TimelineRepository
	publisher    ports.EventPublisher
	clock        ports.Clock
	logger       *logger.Logger
	mu           sync.Mutex
	locks        map[string]*keyLock
}

// keyLock is dropped from the map once no caller holds or waits on it.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

type TaskServiceConfig struct {
	Repository   ports.TaskRepository
	TimelineRepo ports.TimelineRepository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	Logger       *logger.Logger
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &taskService{
		repo:         cfg.Repository,
		timelineRepo: cfg.TimelineRepo,
		publisher:    cfg.Publisher,
		clock:        clock,
		logger:       cfg.Logger,
		locks:        make(map[string]*keyLock),
	}
}

func (s *taskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return taskview.FilterAndSort(records, filter.Normalize()), nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Errorw("task_get_failed", "id", id, "error", err)
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		s.logger.Infow("task_create_validation_failed", "error", err, "request_id", RequestID(ctx))
		return nil, fmt.Errorf("%w: %w", ErrTaskInvalidInput, err)
	}

	now := s.clock.Now()
	task := &domain.Task{CreatedAt: now, UpdatedAt: now}
	input.Apply(task)

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Errorw("task_create_failed", "title", task.Title, "error", err)
		return nil, err
	}

	s.record(ctx, task.ID, domain.EventTypeTaskCreated, fmt.Sprintf("Task %q created", task.Title), map[string]interface{}{
		"title":       task.Title,
		"status":      string(task.Status),
		"assigned_to": task.AssignedTo,
	})
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		s.logger.Infow("task_update_validation_failed", "id", id, "error", err, "request_id", RequestID(ctx))
		return nil, fmt.Errorf("%w: %w", ErrTaskInvalidInput, err)
	}

	unlock := s.lockKeys("task:" + id)
	defer unlock()

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := task.Status

	input.Apply(task)
	task.UpdatedAt = s.clock.Now()
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Errorw("task_update_failed", "id", id, "error", err)
		}
		return nil, err
	}

	meta := map[string]interface{}{"title": task.Title, "status": string(task.Status)}
	if previous != task.Status {
		meta["previous_status"] = string(previous)
	}
	s.record(ctx, task.ID, domain.EventTypeTaskUpdated, fmt.Sprintf("Task %q updated", task.Title), meta)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	unlock := s.lockKeys("task:" + id)
	defer unlock()

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Errorw("task_delete_failed", "id", id, "error", err)
		}
		return err
	}

	s.record(ctx, id, domain.EventTypeTaskDeleted, fmt.Sprintf("Task %q deleted", task.Title), map[string]interface{}{
		"title": task.Title,
	})
	return nil
}

// record appends a timeline event and pushes it to live subscribers. Failures
// are logged and never fail the mutation that caused them.
func (s *taskService) record(ctx context.Context, taskID, eventType, msg string, meta map[string]interface{}) {
	metadata := domain.JSONB{}
	for k, v := range meta {
		metadata[k] = v
	}
	if reqID := RequestID(ctx); reqID != "" {
		metadata["request_id"] = reqID
	}

	event := &domain.TimelineEvent{
		Type:         eventType,
		Status:       domain.EventStatusSuccess,
		Message:      msg,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   taskID,
		Meta:         metadata,
		CreatedAt:    s.clock.Now(),
	}

	if s.timelineRepo != nil {
		if err := s.timelineRepo.Create(ctx, event); err != nil {
			s.logger.Warnw("task_timeline_write_failed", "id", taskID, "type", eventType, "error", err)
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(*event)
	}
}

func (s *taskService) lockKeys(keys ...string) func() {
	if len(keys) == 0 {
		return func() {}
	}
	sort.Strings(keys)
	s.mu.Lock()
	acquired := make([]*keyLock, 0, len(keys))
	for _, k := range keys {
		l := s.locks[k]
		if l == nil {
			l = &keyLock{}
			s.locks[k] = l
		}
		l.refs++
		acquired = append(acquired, l)
	}
	s.mu.Unlock()
	for _, l := range acquired {
		l.mu.Lock()
	}
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
		}
		s.mu.Lock()
		for i, k := range keys {
			acquired[i].refs--
			if acquired[i].refs == 0 {
				delete(s.locks, k)
			}
		}
		s.mu.Unlock()
	}
}
