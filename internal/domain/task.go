package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists every status in the order the UI offers them.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus accepts the display label in any case plus the
// identifier spellings clients tend to send ("in_progress", "InProgress").
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "pending":
		return TaskStatusPending, true
	case "inprogress":
		return TaskStatusInProgress, true
	case "done":
		return TaskStatusDone, true
	}
	return "", false
}

// ==================== ENTITIES ====================

type Task struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Deadline    time.Time  `gorm:"not null;index" json:"deadline"`
	AssignedTo  string     `gorm:"size:255;not null" json:"assigned_to"`
	Status      TaskStatus `gorm:"size:20;not null;default:'Pending';index" json:"status"`
}

// TaskInput carries the editable fields of a task from a create or edit form.
type TaskInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	AssignedTo  string
	Status      TaskStatus
}

// Validate reports every missing or malformed field at once. It returns nil
// or a ValidationErrors value.
func (in TaskInput) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		errs["assigned_to"] = "Assigned To is required"
	}
	if in.Deadline == nil || in.Deadline.IsZero() {
		errs["deadline"] = "Deadline is required"
	}
	if in.Status != "" && !in.Status.Valid() {
		errs["status"] = "Status is invalid"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Apply copies the input onto t. Status falls back to Pending when empty.
func (in TaskInput) Apply(t *Task) {
	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.AssignedTo = strings.TrimSpace(in.AssignedTo)
	if in.Deadline != nil {
		t.Deadline = *in.Deadline
	}
	t.Status = in.Status
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
}
