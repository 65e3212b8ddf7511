package taskview

import (
	"testing"
	"time"

	"github.com/taskdesk/backend/internal/domain"
)

func TestAggregateExampleCounts(t *testing.T) {
	records := []domain.Task{
		task("A", "A", domain.TaskStatusPending, 1),
		task("B", "B", domain.TaskStatusDone, -1),
		task("C", "C", domain.TaskStatusInProgress, 3),
	}

	dash := Aggregate(records, testNow)
	want := domain.StatusCounts{Total: 3, Pending: 1, InProgress: 1, Done: 1}
	if dash.Counts != want {
		t.Fatalf("expected counts %+v, got %+v", want, dash.Counts)
	}
	assertIDs(t, dash.Upcoming, "A", "C")
	if len(dash.Overdue) != 0 {
		t.Fatalf("expected no overdue tasks, got %v", ids(dash.Overdue))
	}
	if !dash.GeneratedAt.Equal(testNow) {
		t.Fatalf("expected generated_at=%s, got %s", testNow, dash.GeneratedAt)
	}
}

func TestCountsSumToTotal(t *testing.T) {
	statuses := []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusInProgress, domain.TaskStatusDone}
	for n := 0; n < 12; n++ {
		records := make([]domain.Task, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, task(string(rune('a'+i)), "t", statuses[(i*7)%3], i))
		}
		c := CountByStatus(records)
		if c.Pending+c.InProgress+c.Done != len(records) || c.Total != len(records) {
			t.Fatalf("n=%d: counts %+v do not sum to %d", n, c, len(records))
		}
	}
}

func TestUpcomingWindowAndLimit(t *testing.T) {
	records := []domain.Task{
		task("late", "late", domain.TaskStatusPending, 8),
		task("d5", "d5", domain.TaskStatusPending, 5),
		task("done", "done", domain.TaskStatusDone, 1),
		task("past", "past", domain.TaskStatusPending, -1),
		task("d2", "d2", domain.TaskStatusInProgress, 2),
		task("d7", "d7", domain.TaskStatusPending, 7),
		task("d1", "d1", domain.TaskStatusPending, 1),
	}

	got := Upcoming(records, testNow)
	assertIDs(t, got, "d1", "d2", "d5")

	for _, u := range got {
		if u.Status == domain.TaskStatusDone {
			t.Fatalf("done task %s in upcoming", u.ID)
		}
		if u.Deadline.Before(testNow) || u.Deadline.After(testNow.AddDate(0, 0, 7)) {
			t.Fatalf("task %s outside window: %s", u.ID, u.Deadline)
		}
	}
}

func TestUpcomingIncludesBoundaries(t *testing.T) {
	atNow := task("now", "now", domain.TaskStatusPending, 0)
	atHorizon := task("horizon", "horizon", domain.TaskStatusPending, 7)
	justAfter := task("after", "after", domain.TaskStatusPending, 7)
	justAfter.Deadline = justAfter.Deadline.Add(time.Second)

	got := Upcoming([]domain.Task{justAfter, atHorizon, atNow}, testNow)
	assertIDs(t, got, "now", "horizon")
}

func TestUpcomingTiesKeepInputOrder(t *testing.T) {
	records := []domain.Task{
		task("first", "first", domain.TaskStatusPending, 2),
		task("second", "second", domain.TaskStatusInProgress, 2),
	}
	assertIDs(t, Upcoming(records, testNow), "first", "second")
}

func TestIsOverdue(t *testing.T) {
	cases := []struct {
		name string
		task domain.Task
		want bool
	}{
		{"yesterday pending", task("1", "x", domain.TaskStatusPending, -1), true},
		{"yesterday in progress", task("2", "x", domain.TaskStatusInProgress, -1), true},
		{"yesterday done", task("3", "x", domain.TaskStatusDone, -1), false},
		{"tomorrow pending", task("4", "x", domain.TaskStatusPending, 1), false},
		{"exactly now", task("5", "x", domain.TaskStatusPending, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverdue(tc.task, testNow); got != tc.want {
				t.Fatalf("expected overdue=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestOverdueReevaluatedAgainstNow(t *testing.T) {
	tk := task("1", "x", domain.TaskStatusPending, 1)
	if IsOverdue(tk, testNow) {
		t.Fatal("expected not overdue today")
	}
	if !IsOverdue(tk, testNow.AddDate(0, 0, 2)) {
		t.Fatal("expected overdue two days later")
	}
}

func TestOverdueList(t *testing.T) {
	records := []domain.Task{
		task("a", "a", domain.TaskStatusPending, -1),
		task("b", "b", domain.TaskStatusDone, -5),
		task("c", "c", domain.TaskStatusInProgress, -3),
		task("d", "d", domain.TaskStatusPending, 2),
	}
	assertIDs(t, Overdue(records, testNow), "c", "a")
}

func TestFormatting(t *testing.T) {
	d := time.Date(2025, time.March, 5, 18, 0, 0, 0, time.UTC)
	if got := FormatShort(d); got != "Mar 05, 2025" {
		t.Fatalf("expected short format Mar 05, 2025, got %s", got)
	}
	if got := FormatLong(d); got != "March 5, 2025" {
		t.Fatalf("expected long format March 5, 2025, got %s", got)
	}
}

func TestGreeting(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 1, 1, h, 0, 0, 0, time.UTC) }
	if got := Greeting(at(8)); got != "Good morning" {
		t.Fatalf("expected Good morning, got %s", got)
	}
	if got := Greeting(at(12)); got != "Good afternoon" {
		t.Fatalf("expected Good afternoon, got %s", got)
	}
	if got := Greeting(at(18)); got != "Good evening" {
		t.Fatalf("expected Good evening, got %s", got)
	}
}
