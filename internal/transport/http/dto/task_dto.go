package dto

import (
	"strings"
	"time"

	"github.com/taskdesk/backend/internal/core/taskview"
	"github.com/taskdesk/backend/internal/domain"
)

const dateOnly = "2006-01-02"

type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	AssignedTo  string `json:"assigned_to"`
	Status      string `json:"status"`
}

// ToInput converts the request into a TaskInput. The returned errors cover
// both unparseable values and the field rules of TaskInput.Validate; nil
// means the input is valid.
func (r *TaskRequest) ToInput() (domain.TaskInput, domain.ValidationErrors) {
	in := domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
	}

	parseErrs := domain.ValidationErrors{}
	if strings.TrimSpace(r.Deadline) != "" {
		deadline, err := ParseDeadline(r.Deadline)
		if err != nil {
			parseErrs["deadline"] = "Deadline is invalid"
		} else {
			in.Deadline = &deadline
		}
	}

	if strings.TrimSpace(r.Status) != "" {
		status, ok := domain.ParseTaskStatus(r.Status)
		if !ok {
			status = domain.TaskStatus(r.Status)
		}
		in.Status = status
	}

	errs := domain.ValidationErrors{}
	if err := in.Validate(); err != nil {
		if verrs, ok := err.(domain.ValidationErrors); ok {
			errs = verrs
		}
	}
	for field, msg := range parseErrs {
		errs[field] = msg
	}
	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// ParseDeadline accepts RFC 3339 timestamps and bare dates. A bare date is
// midnight UTC, which is what a browser date input posts.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateOnly, raw)
}

// ParseTaskFilter reads the list query parameters. "all" or an empty status
// means no status filter. Unknown values are kept so Validate reports them.
func ParseTaskFilter(search, status, sortBy, sortOrder string) domain.TaskFilter {
	f := domain.TaskFilter{
		Search:    search,
		SortBy:    domain.SortKey(strings.ToLower(strings.TrimSpace(sortBy))),
		SortOrder: domain.SortOrder(strings.ToLower(strings.TrimSpace(sortOrder))),
	}

	status = strings.TrimSpace(status)
	if status != "" && !strings.EqualFold(status, "all") {
		parsed, ok := domain.ParseTaskStatus(status)
		if !ok {
			parsed = domain.TaskStatus(status)
		}
		f.Status = parsed
	}
	return f
}

type TaskResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Deadline      time.Time         `json:"deadline"`
	DeadlineShort string            `json:"deadline_short"`
	DeadlineLong  string            `json:"deadline_long"`
	AssignedTo    string            `json:"assigned_to"`
	Status        domain.TaskStatus `json:"status"`
	Overdue       bool              `json:"overdue"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TaskToResponse derives the display fields against now; none of them are
// stored.
func TaskToResponse(t *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Deadline:      t.Deadline,
		DeadlineShort: taskview.FormatShort(t.Deadline),
		DeadlineLong:  taskview.FormatLong(t.Deadline),
		AssignedTo:    t.AssignedTo,
		Status:        t.Status,
		Overdue:       taskview.IsOverdue(*t, now),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func TasksToResponse(tasks []domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i], now))
	}
	return out
}

type TaskListResponse struct {
	Tasks  []TaskResponse    `json:"tasks"`
	Total  int               `json:"total"`
	Filter domain.TaskFilter `json:"filter"`
}

type DashboardResponse struct {
	Counts      domain.StatusCounts `json:"counts"`
	Upcoming    []TaskResponse      `json:"upcoming"`
	Overdue     []TaskResponse      `json:"overdue"`
	Greeting    string              `json:"greeting"`
	GeneratedAt time.Time           `json:"generated_at"`
}

func DashboardToResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Counts:      d.Counts,
		Upcoming:    TasksToResponse(d.Upcoming, d.GeneratedAt),
		Overdue:     TasksToResponse(d.Overdue, d.GeneratedAt),
		Greeting:    d.Greeting,
		GeneratedAt: d.GeneratedAt,
	}
}
