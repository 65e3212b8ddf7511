package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/taskdesk/backend/internal/config"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/core/services"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/db"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/infrastructure/seed"
	"github.com/taskdesk/backend/internal/transport/http/dto"
)

type rootOptions struct {
	configPath string
	seedPath   string
	verbose    bool
	// now is fixed by tests; zero means the wall clock.
	now time.Time
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOptions{})
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Offline tools for the task management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(".env")
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (defaults and TASKDESK_* env when empty)")
	cmd.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "task fixture YAML (built-in demo tasks when empty)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(newListCmd(opts), newReportCmd(opts), newKeygenCmd())
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.LoadDefaults()
	}
	return config.Load(o.configPath)
}

func (o *rootOptions) logger(cfg *config.Config) (*logger.Logger, error) {
	if !o.verbose {
		return logger.NewNop(), nil
	}
	lc := cfg.Logger
	lc.OutputPaths = []string{"stderr"}
	return logger.New(lc)
}

func (o *rootOptions) clock() ports.Clock {
	if o.now.IsZero() {
		return services.SystemClock{}
	}
	return services.FixedClock(o.now)
}

// env is an in-memory store loaded from the fixture plus the services over it.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	clock ports.Clock
	tasks ports.TaskService
}

func (o *rootOptions) open(ctx context.Context) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := o.logger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	clock := o.clock()
	path := o.seedPath
	if path == "" {
		path = cfg.Seed.Path
	}
	fixture, err := seed.Load(path, clock.Now())
	if err != nil {
		return nil, err
	}

	repo := db.NewMemoryTaskRepository(log)
	if err := seed.Into(ctx, repo, fixture); err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		log:   log,
		clock: clock,
		tasks: services.NewTaskService(services.TaskServiceConfig{
			Repository: repo,
			Clock:      clock,
			Logger:     log,
		}),
	}, nil
}

type filterFlags struct {
	search, status, sortBy, sortOrder string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive match on title, description or assignee")
	cmd.Flags().StringVar(&f.status, "status", "all", "Pending, In Progress, Done or all")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", string(domain.SortByDeadline), "deadline, title or status")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", string(domain.SortAsc), "asc or desc")
}

func (f *filterFlags) filter() domain.TaskFilter {
	return dto.ParseTaskFilter(f.search, f.status, f.sortBy, f.sortOrder)
}
