package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/taskdesk/backend/internal/config"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/infrastructure/remote"
)

// SFTPSink uploads reports to a remote directory over SFTP.
type SFTPSink struct {
	client    *remote.SSHClient
	remoteDir string
	log       *logger.Logger
}

var _ ports.ReportSink = (*SFTPSink)(nil)

func NewSFTPSink(cfg config.SFTPConfig, log *logger.Logger) (*SFTPSink, error) {
	if cfg.Host == "" || cfg.User == "" {
		return nil, fmt.Errorf("sftp sink needs reports.sftp.host and reports.sftp.user")
	}

	var privateKey string
	if cfg.PrivateKeyPath != "" {
		pem, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read sftp private key: %w", err)
		}
		privateKey = string(pem)
	}

	if cfg.KnownHostsPath == "" {
		log.Warnw("report_sink_sftp_host_key_unpinned",
			"host", cfg.Host,
			"hint", "set reports.sftp.known_hosts_path to verify the server host key")
	}

	client := remote.NewSSHClient(remote.SSHConfig{
		Host:           cfg.Host,
		Port:           cfg.Port,
		User:           cfg.User,
		Password:       cfg.Password,
		PrivateKey:     privateKey,
		KnownHostsPath: cfg.KnownHostsPath,
		Timeout:        cfg.Timeout,
	})
	return &SFTPSink{client: client, remoteDir: cfg.RemoteDir, log: log}, nil
}

func (s *SFTPSink) Store(ctx context.Context, name string, data []byte) (string, error) {
	remotePath, err := s.client.Upload(ctx, s.remoteDir, name, data)
	if err != nil {
		s.log.Errorw("report_sink_sftp_failed", "host", s.client.Address(), "name", name, "error", err)
		return "", err
	}

	location := fmt.Sprintf("sftp://%s/%s", s.client.Address(), strings.TrimPrefix(remotePath, "/"))
	s.log.Infow("report_sink_sftp_ok", "location", location, "bytes", len(data))
	return location, nil
}

// New picks the sink named by cfg.Sink.
func New(cfg config.ReportsConfig, log *logger.Logger) (ports.ReportSink, error) {
	switch cfg.Sink {
	case "", config.SinkLocal:
		return NewLocalSink(cfg.LocalDir, log), nil
	case config.SinkSFTP:
		return NewSFTPSink(cfg.SFTP, log)
	default:
		return nil, fmt.Errorf("unknown report sink %q", cfg.Sink)
	}
}
