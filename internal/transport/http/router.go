package http

import (
	"context"
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/config"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/core/report"
	"github.com/taskdesk/backend/internal/core/services"
	"github.com/taskdesk/backend/internal/infrastructure/db"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/infrastructure/seed"
	"github.com/taskdesk/backend/internal/infrastructure/storage"
	"github.com/taskdesk/backend/internal/infrastructure/sysstats"
	"github.com/taskdesk/backend/internal/transport/http/handlers"
	httpmw "github.com/taskdesk/backend/internal/transport/http/middleware"
	"gorm.io/gorm"
)

type RouterConfig struct {
	// DB backs the stores with postgres. Nil keeps everything in memory.
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
	Clock  ports.Clock
	// Sink overrides the sink selected by reports.sink.
	Sink ports.ReportSink
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) error {
	clock := cfg.Clock
	if clock == nil {
		clock = services.SystemClock{}
	}

	// Initialize repositories
	var (
		taskRepo     ports.TaskRepository
		timelineRepo ports.TimelineRepository
		driver       = config.DriverMemory
	)
	if cfg.DB != nil {
		taskRepo = db.NewTaskRepository(cfg.DB, cfg.Logger)
		timelineRepo = db.NewTimelineRepository(cfg.DB, cfg.Logger)
		driver = config.DriverPostgres
	} else {
		taskRepo = db.NewMemoryTaskRepository(cfg.Logger)
		timelineRepo = db.NewMemoryTimelineRepository(cfg.Logger)
	}

	if cfg.Config.Seed.Enabled {
		if err := seedIfEmpty(context.Background(), taskRepo, cfg.Config.Seed.Path, clock, cfg.Logger); err != nil {
			return err
		}
	}

	sink := cfg.Sink
	if sink == nil {
		s, err := storage.New(cfg.Config.Reports, cfg.Logger)
		if err != nil {
			cfg.Logger.Warnw("report_sink_unavailable", "sink", cfg.Config.Reports.Sink, "error", err)
		} else {
			sink = s
		}
	}

	// Initialize services
	hub := services.NewFeedHub(cfg.Logger)

	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository:   taskRepo,
		TimelineRepo: timelineRepo,
		Publisher:    hub,
		Clock:        clock,
		Logger:       cfg.Logger,
	})

	dashboardService := services.NewDashboardService(services.DashboardServiceConfig{
		Repository: taskRepo,
		Clock:      clock,
		Logger:     cfg.Logger,
	})

	reportService := services.NewReportService(services.ReportServiceConfig{
		Tasks:        taskService,
		Renderer:     report.NewRenderer(),
		Sink:         sink,
		TimelineRepo: timelineRepo,
		Publisher:    hub,
		Clock:        clock,
		DefaultTitle: cfg.Config.Reports.Title,
		Logger:       cfg.Logger,
	})

	authService, err := services.NewAuthService(services.AuthServiceConfig{
		JWTSecret:     cfg.Config.Auth.JWTSecret,
		EncryptionKey: cfg.Config.Security.EncryptionKey,
		TokenTTL:      cfg.Config.Auth.TokenTTL,
		Google:        cfg.Config.Auth.Google,
		Clock:         clock,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return err
	}

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, clock, cfg.Logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Logger)
	reportHandler := handlers.NewReportHandler(reportService, cfg.Logger)
	authHandler := handlers.NewAuthHandler(authService, cfg.Logger)
	timelineHandler := handlers.NewTimelineHandler(timelineRepo)
	feedHandler := handlers.NewFeedHandler(hub, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(sysstats.NewCollector(), driver)

	requireSession := httpmw.RequireSession(authService, cfg.Config.Auth.Disabled)

	app.Get("/health", healthHandler.Health)

	// Live feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/feed", requireSession, websocket.New(feedHandler.Handle))

	// API v1 routes
	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/demo", authHandler.DemoLogin)
	auth.Get("/google/login", authHandler.GoogleLogin)
	auth.Get("/google/callback", authHandler.GoogleCallback)
	auth.Get("/me", requireSession, authHandler.Me)

	api.Get("/dashboard", requireSession, dashboardHandler.GetDashboard)

	// Task routes
	tasks := api.Group("/tasks", requireSession)
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Put("/:id", taskHandler.UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)

	// Report routes
	reports := api.Group("/reports", requireSession)
	reports.Get("/tasks.pdf", reportHandler.DownloadTasksReport)
	reports.Post("/archive", reportHandler.ArchiveTasksReport)

	// Timeline routes
	timeline := api.Group("/timeline", requireSession)
	timeline.Get("/", timelineHandler.GetEvents)

	cfg.Logger.Infow("routes_ready", "store", driver, "google_login", authService.GoogleEnabled(), "auth_disabled", cfg.Config.Auth.Disabled)
	return nil
}

func seedIfEmpty(ctx context.Context, repo ports.TaskRepository, path string, clock ports.Clock, log *logger.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("check task store: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	tasks, err := seed.Load(path, clock.Now())
	if err != nil {
		return err
	}
	if err := seed.Into(ctx, repo, tasks); err != nil {
		return err
	}
	log.Infow("task_store_seeded", "count", len(tasks), "path", path)
	return nil
}
