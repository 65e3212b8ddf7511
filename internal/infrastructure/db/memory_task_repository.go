package db

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

// MemoryTaskRepository keeps tasks in process memory in insertion order.
// Tasks are copied on the way in and out so callers never share storage.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]domain.Task
	log   *logger.Logger
}

func NewMemoryTaskRepository(log *logger.Logger) *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]domain.Task),
		log:   log,
	}
}

var _ ports.TaskRepository = (*MemoryTaskRepository)(nil)

func (r *MemoryTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *MemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if _, exists := r.tasks[task.ID]; exists {
		return domain.ErrTaskAlreadyExists
	}

	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	r.log.Infow("task_repo_create_ok", "id", task.ID, "title", task.Title)
	return nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	updated := *task
	updated.CreatedAt = current.CreatedAt
	r.tasks[task.ID] = updated
	r.log.Infow("task_repo_update_ok", "id", task.ID)
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}

	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}

// Len reports the number of stored tasks.
func (r *MemoryTaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
