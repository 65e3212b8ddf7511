package ports

import (
	"context"
	"time"

	"github.com/taskdesk/backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type TaskService interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}

type ReportFile struct {
	Name  string
	Data  []byte
	Pages int
	Rows  int
}

type ArchivedReport struct {
	Location string `json:"location"`
	Name     string `json:"name"`
	Pages    int    `json:"pages"`
	Rows     int    `json:"rows"`
}

type ReportService interface {
	Generate(ctx context.Context, filter domain.TaskFilter, title string) (*ReportFile, error)
	Archive(ctx context.Context, filter domain.TaskFilter, title string) (*ArchivedReport, error)
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type AuthService interface {
	DemoLogin(ctx context.Context) (*Session, error)
	Authenticate(token string) (*domain.User, error)
	GoogleEnabled() bool
	GoogleLoginURL() (redirectURL string, stateCookie string, err error)
	GoogleCallback(ctx context.Context, state, stateCookie, code string) (*Session, error)
}

// EventPublisher fans timeline events out to live subscribers.
type EventPublisher interface {
	Publish(event domain.TimelineEvent)
}
