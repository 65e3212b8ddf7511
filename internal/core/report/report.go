// Package report turns an already filtered and sorted task list into a
// paginated PDF table with a summary block.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdesk/backend/internal/core/taskview"
	"github.com/taskdesk/backend/internal/domain"
)

const (
	DefaultTitle      = "Tasks Report"
	FileName          = "tasks-report.pdf"
	ConfidentialLabel = "Task Management System - Confidential"
	SummaryHeading    = "Summary"
)

// Columns are the table header labels, in order.
var Columns = []string{"Title", "Assigned To", "Deadline", "Status"}

type Row struct {
	Title      string
	AssignedTo string
	Deadline   string
	Status     domain.TaskStatus
}

func (r Row) Cells() []string {
	return []string{r.Title, r.AssignedTo, r.Deadline, string(r.Status)}
}

// Report is the layout-independent content of a task report.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Rows        []Row
	Summary     domain.StatusCounts
}

// Build derives one row per record in the given order. Records are not
// re-sorted; the summary counts only the records passed in.
func Build(records []domain.Task, title string, now time.Time) *Report {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	rows := make([]Row, 0, len(records))
	for _, t := range records {
		rows = append(rows, Row{
			Title:      t.Title,
			AssignedTo: t.AssignedTo,
			Deadline:   taskview.FormatShort(t.Deadline),
			Status:     t.Status,
		})
	}

	return &Report{
		Title:       title,
		GeneratedAt: now,
		Rows:        rows,
		Summary:     taskview.CountByStatus(records),
	}
}

func (r *Report) GeneratedLine() string {
	return "Generated on: " + taskview.FormatLong(r.GeneratedAt)
}

func (r *Report) SummaryLines() []string {
	return []string{
		fmt.Sprintf("Total Tasks: %d", r.Summary.Total),
		fmt.Sprintf("Pending: %d", r.Summary.Pending),
		fmt.Sprintf("In Progress: %d", r.Summary.InProgress),
		fmt.Sprintf("Completed: %d", r.Summary.Done),
	}
}

// ArchiveName is the file name used when a report is stored rather than
// downloaded.
func ArchiveName(generatedAt time.Time) string {
	return "tasks-report-" + generatedAt.UTC().Format("20060102-150405") + ".pdf"
}
