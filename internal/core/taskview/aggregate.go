package taskview

import (
	"slices"
	"time"

	"github.com/taskdesk/backend/internal/domain"
)

const (
	UpcomingWindowDays = 7
	UpcomingLimit      = 3
)

// IsOverdue reports whether t missed its deadline as of now. Done tasks are
// never overdue.
func IsOverdue(t domain.Task, now time.Time) bool {
	return t.Status != domain.TaskStatusDone && t.Deadline.Before(now)
}

func CountByStatus(records []domain.Task) domain.StatusCounts {
	counts := domain.StatusCounts{Total: len(records)}
	for _, t := range records {
		switch t.Status {
		case domain.TaskStatusPending:
			counts.Pending++
		case domain.TaskStatusInProgress:
			counts.InProgress++
		case domain.TaskStatusDone:
			counts.Done++
		}
	}
	return counts
}

// Upcoming returns at most UpcomingLimit open tasks due between now and
// now+7 days inclusive, earliest deadline first.
func Upcoming(records []domain.Task, now time.Time) []domain.Task {
	horizon := now.AddDate(0, 0, UpcomingWindowDays)

	out := make([]domain.Task, 0, UpcomingLimit)
	for _, t := range records {
		if t.Status == domain.TaskStatusDone {
			continue
		}
		if t.Deadline.Before(now) || t.Deadline.After(horizon) {
			continue
		}
		out = append(out, t)
	}
	sortByDeadline(out)

	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

// Overdue returns every overdue task, earliest deadline first.
func Overdue(records []domain.Task, now time.Time) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range records {
		if IsOverdue(t, now) {
			out = append(out, t)
		}
	}
	sortByDeadline(out)
	return out
}

func Aggregate(records []domain.Task, now time.Time) domain.Dashboard {
	return domain.Dashboard{
		Counts:      CountByStatus(records),
		Upcoming:    Upcoming(records, now),
		Overdue:     Overdue(records, now),
		GeneratedAt: now,
	}
}

func sortByDeadline(tasks []domain.Task) {
	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		return a.Deadline.Compare(b.Deadline)
	})
}
