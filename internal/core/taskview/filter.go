// Package taskview derives read-only views from a task collection: the
// filtered and sorted list, dashboard counts, upcoming and overdue subsets.
// Every function is pure. The current instant is always passed in.
package taskview

import (
	"slices"
	"strings"

	"github.com/taskdesk/backend/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAndSort applies the search and status filters of f to records and
// returns the survivors ordered by f.SortBy/f.SortOrder. The result is a new
// slice; records is never modified.
func FilterAndSort(records []domain.Task, f domain.TaskFilter) []domain.Task {
	f = f.Normalize()
	needle := strings.ToLower(f.Search)

	out := make([]domain.Task, 0, len(records))
	for _, t := range records {
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}

	compare := comparator(f.SortBy)
	if f.SortOrder == domain.SortDesc {
		asc := compare
		compare = func(a, b domain.Task) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func matchesSearch(t domain.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.AssignedTo), needle)
}

// comparator returns an ascending three-way comparison for key. Collators
// keep internal buffers, so each call gets its own.
func comparator(key domain.SortKey) func(a, b domain.Task) int {
	switch key {
	case domain.SortByTitle:
		col := collate.New(language.English)
		return func(a, b domain.Task) int {
			return col.CompareString(a.Title, b.Title)
		}
	case domain.SortByStatus:
		col := collate.New(language.English)
		return func(a, b domain.Task) int {
			return col.CompareString(string(a.Status), string(b.Status))
		}
	default:
		return func(a, b domain.Task) int {
			return a.Deadline.Compare(b.Deadline)
		}
	}
}
