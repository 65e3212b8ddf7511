package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

func newTask(title string) *domain.Task {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Task{
		Title:       title,
		Description: "desc",
		AssignedTo:  "Sarah Johnson",
		Status:      domain.TaskStatusPending,
		Deadline:    now.AddDate(0, 0, 3),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemoryTaskRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	for _, title := range []string{"c", "a", "b"} {
		if err := repo.Create(ctx, newTask(title)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 3 || tasks[0].Title != "c" || tasks[1].Title != "a" || tasks[2].Title != "b" {
		t.Fatalf("expected insertion order c,a,b, got %+v", tasks)
	}
	for _, task := range tasks {
		if task.ID == "" {
			t.Fatal("expected generated id")
		}
	}
}

func TestMemoryTaskRepositoryDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	original := newTask("original")
	if err := repo.Create(ctx, original); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	original.Title = "changed after create"

	got, err := repo.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "original" {
		t.Fatalf("expected stored title original, got %s", got.Title)
	}

	got.Title = "changed after get"
	list, _ := repo.List(ctx)
	list[0].Title = "changed after list"

	again, _ := repo.GetByID(ctx, original.ID)
	if again.Title != "original" {
		t.Fatalf("expected stored title original, got %s", again.Title)
	}
}

func TestMemoryTaskRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	task := newTask("one")
	task.ID = "fixed"
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, newTaskWithID("fixed")); !errors.Is(err, domain.ErrTaskAlreadyExists) {
		t.Fatalf("expected ErrTaskAlreadyExists, got %v", err)
	}
}

func newTaskWithID(id string) *domain.Task {
	task := newTask("dup")
	task.ID = id
	return task
}

func TestMemoryTaskRepositoryUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	task := newTask("before")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	created := task.CreatedAt

	edit := *task
	edit.Title = "after"
	edit.Status = domain.TaskStatusDone
	edit.CreatedAt = time.Time{}
	edit.UpdatedAt = created.Add(time.Hour)
	if err := repo.Update(ctx, &edit); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, task.ID)
	if got.Title != "after" || got.Status != domain.TaskStatusDone {
		t.Fatalf("expected updated fields, got %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %s, got %s", created, got.CreatedAt)
	}
}

func TestMemoryTaskRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from get, got %v", err)
	}
	if err := repo.Update(ctx, newTaskWithID("missing")); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from update, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from delete, got %v", err)
	}
}

func TestMemoryTaskRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepository(logger.NewNop())

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task := newTask(title)
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, task.ID)
	}

	if err := repo.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	tasks, _ := repo.List(ctx)
	if len(tasks) != 2 || tasks[0].ID != ids[0] || tasks[1].ID != ids[2] {
		t.Fatalf("expected remaining a,c in order, got %+v", tasks)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected len 2, got %d", repo.Len())
	}
}
