package db

import (
	"context"
	"sync"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

// MemoryTimelineRepository is a bounded in-process event log used when no
// database is configured. The oldest events are dropped past capacity.
type MemoryTimelineRepository struct {
	mu       sync.RWMutex
	events   []domain.TimelineEvent
	nextID   uint
	capacity int
	log      *logger.Logger
}

const defaultTimelineCapacity = 1000

func NewMemoryTimelineRepository(log *logger.Logger) *MemoryTimelineRepository {
	return &MemoryTimelineRepository{capacity: defaultTimelineCapacity, log: log}
}

var _ ports.TimelineRepository = (*MemoryTimelineRepository)(nil)

func (r *MemoryTimelineRepository) Create(ctx context.Context, event *domain.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event.ID = r.nextID
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = event.CreatedAt
	}

	r.events = append(r.events, *event)
	if len(r.events) > r.capacity {
		r.events = append([]domain.TimelineEvent(nil), r.events[len(r.events)-r.capacity:]...)
	}

	r.log.Debugw("timeline event",
		"type", event.Type,
		"status", event.Status,
		"resource_type", event.ResourceType,
		"resource_id", event.ResourceID,
	)
	return nil
}

// GetAll returns up to limit events, newest first.
func (r *MemoryTimelineRepository) GetAll(ctx context.Context, limit int) ([]domain.TimelineEvent, error) {
	return r.newest(limit, func(domain.TimelineEvent) bool { return true }), nil
}

func (r *MemoryTimelineRepository) GetByResource(ctx context.Context, resourceType string, resourceID string) ([]domain.TimelineEvent, error) {
	return r.newest(resourceHistoryLimit, func(e domain.TimelineEvent) bool {
		return e.ResourceType == resourceType && e.ResourceID == resourceID
	}), nil
}

func (r *MemoryTimelineRepository) newest(limit int, keep func(domain.TimelineEvent) bool) []domain.TimelineEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.TimelineEvent{}
	for i := len(r.events) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if keep(r.events[i]) {
			out = append(out, r.events[i])
		}
	}
	return out
}
