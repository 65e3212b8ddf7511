package services

import (
	"context"
	"fmt"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/core/taskview"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

type dashboardService struct {
	repo   ports.TaskRepository
	clock  ports.Clock
	logger *logger.Logger
}

type DashboardServiceConfig struct {
	Repository ports.TaskRepository
	Clock      ports.Clock
	Logger     *logger.Logger
}

func NewDashboardService(cfg DashboardServiceConfig) ports.DashboardService {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &dashboardService{repo: cfg.Repository, clock: clock, logger: cfg.Logger}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Errorw("dashboard_list_failed", "error", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := s.clock.Now()
	dash := taskview.Aggregate(records, now)
	dash.Greeting = taskview.Greeting(now)
	return &dash, nil
}
