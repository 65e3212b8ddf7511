package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/core/report"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

type reportService struct {
	tasks        ports.TaskService
	renderer     *report.Renderer
	sink         ports.ReportSink
	timelineRepo ports.TimelineRepository
	publisher    ports.EventPublisher
	clock        ports.Clock
	defaultTitle string
	logger       *logger.Logger
}

type ReportServiceConfig struct {
	Tasks        ports.TaskService
	Renderer     *report.Renderer
	Sink         ports.ReportSink
	TimelineRepo ports.TimelineRepository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	DefaultTitle string
	Logger       *logger.Logger
}

func NewReportService(cfg ReportServiceConfig) ports.ReportService {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = report.NewRenderer()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &reportService{
		tasks:        cfg.Tasks,
		renderer:     renderer,
		sink:         cfg.Sink,
		timelineRepo: cfg.TimelineRepo,
		publisher:    cfg.Publisher,
		clock:        clock,
		defaultTitle: cfg.DefaultTitle,
		logger:       cfg.Logger,
	}
}

// Generate renders the tasks selected by filter, in the filter's order.
func (s *reportService) Generate(ctx context.Context, filter domain.TaskFilter, title string) (*ports.ReportFile, error) {
	records, err := s.tasks.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = s.defaultTitle
	}
	rep := report.Build(records, title, s.clock.Now())

	var buf bytes.Buffer
	pages, err := s.renderer.Render(&buf, rep)
	if err != nil {
		s.logger.Errorw("report_render_failed", "rows", len(rep.Rows), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrReportRender, err)
	}

	s.logger.Infow("report_render_ok", "rows", len(rep.Rows), "pages", pages, "bytes", buf.Len())
	return &ports.ReportFile{
		Name:  report.FileName,
		Data:  buf.Bytes(),
		Pages: pages,
		Rows:  len(rep.Rows),
	}, nil
}

// Archive renders the report and hands it to the configured sink under a
// timestamped name.
func (s *reportService) Archive(ctx context.Context, filter domain.TaskFilter, title string) (*ports.ArchivedReport, error) {
	if s.sink == nil {
		return nil, ErrNoReportSink
	}

	file, err := s.Generate(ctx, filter, title)
	if err != nil {
		return nil, err
	}

	name := report.ArchiveName(s.clock.Now())
	location, err := s.sink.Store(ctx, name, file.Data)
	if err != nil {
		s.logger.Errorw("report_archive_failed", "name", name, "error", err)
		s.record(ctx, name, domain.EventStatusFailed, "Report archive failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrReportArchive, err)
	}

	s.logger.Infow("report_archive_ok", "name", name, "location", location)
	s.record(ctx, name, domain.EventStatusSuccess, "Report archived", map[string]interface{}{
		"location": location,
		"pages":    file.Pages,
		"rows":     file.Rows,
	})
	return &ports.ArchivedReport{
		Location: location,
		Name:     name,
		Pages:    file.Pages,
		Rows:     file.Rows,
	}, nil
}

func (s *reportService) record(ctx context.Context, name string, status domain.EventStatus, msg string, meta map[string]interface{}) {
	metadata := domain.JSONB(meta)
	if reqID := RequestID(ctx); reqID != "" {
		metadata["request_id"] = reqID
	}
	event := &domain.TimelineEvent{
		Type:         domain.EventTypeReportSaved,
		Status:       status,
		Message:      msg,
		ResourceType: domain.ResourceTypeReport,
		ResourceID:   name,
		Meta:         metadata,
		CreatedAt:    s.clock.Now(),
	}
	if s.timelineRepo != nil {
		if err := s.timelineRepo.Create(ctx, event); err != nil {
			s.logger.Warnw("report_timeline_write_failed", "name", name, "error", err)
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(*event)
	}
}
