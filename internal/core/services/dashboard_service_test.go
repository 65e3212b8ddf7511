package services

import (
	"context"
	"testing"

	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/db"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

func TestDashboardServiceUsesClock(t *testing.T) {
	log := logger.NewNop()
	repo := db.NewMemoryTaskRepository(log)
	ctx := context.Background()

	add := func(title string, status domain.TaskStatus, days int) {
		task := &domain.Task{
			Title:       title,
			Description: "d",
			AssignedTo:  "a",
			Status:      status,
			Deadline:    testNow.AddDate(0, 0, days),
		}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	add("soon", domain.TaskStatusPending, 1)
	add("late", domain.TaskStatusInProgress, -2)
	add("finished", domain.TaskStatusDone, -1)

	svc := NewDashboardService(DashboardServiceConfig{Repository: repo, Clock: FixedClock(testNow), Logger: log})
	dash, err := svc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	want := domain.StatusCounts{Total: 3, Pending: 1, InProgress: 1, Done: 1}
	if dash.Counts != want {
		t.Fatalf("expected counts %+v, got %+v", want, dash.Counts)
	}
	if len(dash.Upcoming) != 1 || dash.Upcoming[0].Title != "soon" {
		t.Fatalf("expected upcoming [soon], got %+v", dash.Upcoming)
	}
	if len(dash.Overdue) != 1 || dash.Overdue[0].Title != "late" {
		t.Fatalf("expected overdue [late], got %+v", dash.Overdue)
	}
	if dash.Greeting != "Good morning" {
		t.Fatalf("expected Good morning at 09:30, got %s", dash.Greeting)
	}
}
