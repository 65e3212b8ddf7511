// Package seed loads task fixtures from YAML into a task repository.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

type fixture struct {
	Tasks []fixtureTask `yaml:"tasks"`
}

// fixtureTask either pins Deadline or places it DeadlineInDays from the load
// time. CreatedDaysAgo and UpdatedDaysAgo work the same way.
type fixtureTask struct {
	ID             string     `yaml:"id"`
	Title          string     `yaml:"title"`
	Description    string     `yaml:"description"`
	AssignedTo     string     `yaml:"assigned_to"`
	Status         string     `yaml:"status"`
	Deadline       *time.Time `yaml:"deadline"`
	DeadlineInDays int        `yaml:"deadline_in_days"`
	CreatedDaysAgo int        `yaml:"created_days_ago"`
	UpdatedDaysAgo int        `yaml:"updated_days_ago"`
}

// Load reads the fixture at path, or the built-in demo fixture when path is
// empty, and resolves relative dates against now.
func Load(path string, now time.Time) ([]domain.Task, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = raw
	}
	return Parse(data, now)
}

func Parse(data []byte, now time.Time) ([]domain.Task, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	tasks := make([]domain.Task, 0, len(f.Tasks))
	for i, ft := range f.Tasks {
		task, err := ft.toTask(now)
		if err != nil {
			return nil, fmt.Errorf("seed task %d: %w", i+1, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (ft fixtureTask) toTask(now time.Time) (domain.Task, error) {
	deadline := now.AddDate(0, 0, ft.DeadlineInDays)
	if ft.Deadline != nil {
		deadline = *ft.Deadline
	}

	status := domain.TaskStatusPending
	if ft.Status != "" {
		parsed, ok := domain.ParseTaskStatus(ft.Status)
		if !ok {
			return domain.Task{}, fmt.Errorf("unknown status %q", ft.Status)
		}
		status = parsed
	}

	in := domain.TaskInput{
		Title:       ft.Title,
		Description: ft.Description,
		Deadline:    &deadline,
		AssignedTo:  ft.AssignedTo,
		Status:      status,
	}
	if err := in.Validate(); err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:        ft.ID,
		CreatedAt: now.AddDate(0, 0, -ft.CreatedDaysAgo),
		UpdatedAt: now.AddDate(0, 0, -ft.UpdatedDaysAgo),
	}
	in.Apply(&task)
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}
	return task, nil
}

// Into stores every task in repo, in fixture order.
func Into(ctx context.Context, repo ports.TaskRepository, tasks []domain.Task) error {
	for i := range tasks {
		task := tasks[i]
		if err := repo.Create(ctx, &task); err != nil {
			return fmt.Errorf("seed %q: %w", task.Title, err)
		}
	}
	return nil
}
