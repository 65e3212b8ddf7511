// Package storage holds the destinations archived reports can be written to.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

// LocalSink writes reports into a directory on the local filesystem.
type LocalSink struct {
	dir string
	log *logger.Logger
}

func NewLocalSink(dir string, log *logger.Logger) *LocalSink {
	return &LocalSink{dir: dir, log: log}
}

var _ ports.ReportSink = (*LocalSink)(nil)

func (s *LocalSink) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid report name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move report into place: %w", err)
	}

	s.log.Infow("report_sink_local_ok", "path", target, "bytes", len(data))
	return target, nil
}
