package taskview

import (
	"testing"
	"time"

	"github.com/taskdesk/backend/internal/domain"
)

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func task(id, title string, status domain.TaskStatus, deadlineInDays int) domain.Task {
	return domain.Task{
		ID:          id,
		Title:       title,
		Description: "description of " + title,
		AssignedTo:  "owner of " + title,
		Status:      status,
		Deadline:    testNow.AddDate(0, 0, deadlineInDays),
		CreatedAt:   testNow.AddDate(0, 0, -10),
		UpdatedAt:   testNow.AddDate(0, 0, -10),
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestFilterAndSortExampleByDeadline(t *testing.T) {
	records := []domain.Task{
		task("A", "A", domain.TaskStatusPending, 1),
		task("B", "B", domain.TaskStatusDone, -1),
		task("C", "C", domain.TaskStatusInProgress, 3),
	}

	got := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByDeadline, SortOrder: domain.SortAsc})
	assertIDs(t, got, "B", "A", "C")

	got = FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByDeadline, SortOrder: domain.SortDesc})
	assertIDs(t, got, "C", "A", "B")
}

func TestFilterAndSortSearch(t *testing.T) {
	a := task("1", "Write API documentation", domain.TaskStatusPending, 10)
	b := task("2", "Create dashboard layout", domain.TaskStatusPending, 1)
	b.Description = "Design the main DASHBOARD"
	c := task("3", "Fix layout issues", domain.TaskStatusDone, -1)
	c.AssignedTo = "Emma Wilson"
	records := []domain.Task{a, b, c}

	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match", "api", []string{"1"}},
		{"case insensitive description", "dashboard", []string{"2"}},
		{"assignee match", "emma", []string{"3"}},
		{"shared word across rows", "layout", []string{"3", "2"}},
		{"no match", "kubernetes", nil},
		{"empty search keeps all", "", []string{"3", "2", "1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterAndSort(records, domain.TaskFilter{Search: tc.search})
			assertIDs(t, got, tc.want...)
		})
	}
}

func TestFilterAndSortStatusFilter(t *testing.T) {
	records := []domain.Task{
		task("1", "one", domain.TaskStatusPending, 2),
		task("2", "two", domain.TaskStatusInProgress, 1),
		task("3", "three", domain.TaskStatusPending, 1),
	}

	got := FilterAndSort(records, domain.TaskFilter{Status: domain.TaskStatusPending})
	assertIDs(t, got, "3", "1")

	got = FilterAndSort(records, domain.TaskFilter{Status: domain.TaskStatusDone})
	if len(got) != 0 {
		t.Fatalf("expected no done tasks, got %v", ids(got))
	}
}

func TestFilterAndSortTitleUsesCollation(t *testing.T) {
	records := []domain.Task{
		task("1", "banana", domain.TaskStatusPending, 0),
		task("2", "Cherry", domain.TaskStatusPending, 0),
		task("3", "apple", domain.TaskStatusPending, 0),
		task("4", "Banana split", domain.TaskStatusPending, 0),
	}

	got := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByTitle, SortOrder: domain.SortAsc})
	assertIDs(t, got, "3", "1", "4", "2")
}

func TestFilterAndSortStatusOrder(t *testing.T) {
	records := []domain.Task{
		task("p", "p", domain.TaskStatusPending, 0),
		task("d", "d", domain.TaskStatusDone, 0),
		task("i", "i", domain.TaskStatusInProgress, 0),
	}

	got := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByStatus, SortOrder: domain.SortAsc})
	assertIDs(t, got, "d", "i", "p")

	got = FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByStatus, SortOrder: domain.SortDesc})
	assertIDs(t, got, "p", "i", "d")
}

func TestFilterAndSortStableInBothDirections(t *testing.T) {
	records := []domain.Task{
		task("x1", "same", domain.TaskStatusPending, 2),
		task("y", "other", domain.TaskStatusPending, 5),
		task("x2", "same", domain.TaskStatusPending, 2),
		task("x3", "same", domain.TaskStatusPending, 2),
	}

	asc := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByDeadline, SortOrder: domain.SortAsc})
	assertIDs(t, asc, "x1", "x2", "x3", "y")

	desc := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByDeadline, SortOrder: domain.SortDesc})
	assertIDs(t, desc, "y", "x1", "x2", "x3")

	byTitle := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByTitle, SortOrder: domain.SortDesc})
	assertIDs(t, byTitle, "x1", "x2", "x3", "y")
}

func TestFilterAndSortIsIdempotent(t *testing.T) {
	records := []domain.Task{
		task("1", "delta", domain.TaskStatusPending, 4),
		task("2", "alpha", domain.TaskStatusDone, 1),
		task("3", "charlie", domain.TaskStatusInProgress, 4),
		task("4", "bravo", domain.TaskStatusPending, -2),
	}
	filters := []domain.TaskFilter{
		{SortBy: domain.SortByDeadline, SortOrder: domain.SortAsc},
		{SortBy: domain.SortByTitle, SortOrder: domain.SortDesc},
		{Search: "a", Status: domain.TaskStatusPending, SortBy: domain.SortByStatus, SortOrder: domain.SortAsc},
	}

	for _, f := range filters {
		once := FilterAndSort(records, f)
		twice := FilterAndSort(once, f)
		assertIDs(t, twice, ids(once)...)
	}
}

func TestFilterAndSortDoesNotInventOrDuplicate(t *testing.T) {
	records := []domain.Task{
		task("1", "one", domain.TaskStatusPending, 3),
		task("2", "two", domain.TaskStatusDone, 1),
		task("3", "three", domain.TaskStatusInProgress, 2),
	}

	got := FilterAndSort(records, domain.TaskFilter{SortBy: domain.SortByTitle})
	seen := map[string]int{}
	for _, g := range got {
		seen[g.ID]++
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d tasks, got %d", len(records), len(got))
	}
	for _, r := range records {
		if seen[r.ID] != 1 {
			t.Fatalf("expected %s exactly once, got %d", r.ID, seen[r.ID])
		}
	}
}

func TestFilterAndSortDoesNotAliasInput(t *testing.T) {
	records := []domain.Task{
		task("1", "b", domain.TaskStatusPending, 2),
		task("2", "a", domain.TaskStatusPending, 1),
	}

	got := FilterAndSort(records, domain.DefaultTaskFilter())
	got[0].Title = "mutated"

	if records[0].Title != "b" || records[1].Title != "a" {
		t.Fatalf("input was modified: %+v", records)
	}
	if records[0].ID != "1" {
		t.Fatalf("input order changed: %v", ids(records))
	}
}

func TestFilterAndSortEmptyInput(t *testing.T) {
	got := FilterAndSort(nil, domain.DefaultTaskFilter())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
