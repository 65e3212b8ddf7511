package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

func TestMemoryTimelineNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimelineRepository(logger.NewNop())

	for i := 0; i < 5; i++ {
		err := repo.Create(ctx, &domain.TimelineEvent{
			Type:         domain.EventTypeTaskCreated,
			Status:       domain.EventStatusSuccess,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   fmt.Sprintf("task-%d", i%2),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all, _ := repo.GetAll(ctx, 3)
	if len(all) != 3 || all[0].ID != 5 || all[2].ID != 3 {
		t.Fatalf("expected ids 5,4,3, got %+v", all)
	}

	forTask, _ := repo.GetByResource(ctx, domain.ResourceTypeTask, "task-0")
	if len(forTask) != 3 {
		t.Fatalf("expected 3 events for task-0, got %d", len(forTask))
	}
	for _, e := range forTask {
		if e.ResourceID != "task-0" {
			t.Fatalf("unexpected resource %s", e.ResourceID)
		}
	}
}

func TestMemoryTimelineDropsOldest(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimelineRepository(logger.NewNop())
	repo.capacity = 2

	for i := 0; i < 4; i++ {
		_ = repo.Create(ctx, &domain.TimelineEvent{Type: domain.EventTypeTaskUpdated})
	}

	all, _ := repo.GetAll(ctx, 0)
	if len(all) != 2 || all[0].ID != 4 || all[1].ID != 3 {
		t.Fatalf("expected ids 4,3, got %+v", all)
	}
}
