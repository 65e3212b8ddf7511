package ports

import (
	"context"

	"github.com/taskdesk/backend/internal/domain"
)

// TaskRepository is the task record store. List returns tasks in a stable
// insertion order; GetByID, Update and Delete return domain.ErrTaskNotFound
// for unknown ids.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type TimelineRepository interface {
	Create(ctx context.Context, event *domain.TimelineEvent) error
	GetByResource(ctx context.Context, resourceType string, resourceID string) ([]domain.TimelineEvent, error)
	GetAll(ctx context.Context, limit int) ([]domain.TimelineEvent, error)
}

// ReportSink stores a rendered report and returns where it ended up.
type ReportSink interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}
