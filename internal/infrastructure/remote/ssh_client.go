package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

var (
	ErrSSHConnection     = errors.New("ssh: connection failed")
	ErrSSHAuthentication = errors.New("ssh: authentication failed")
	ErrSSHTimeout        = errors.New("ssh: connection timeout")
	ErrUploadFailed      = errors.New("sftp: upload failed")
)

type SSHConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// PrivateKey is PEM text, not a path.
	PrivateKey string
	// KnownHostsPath pins host keys. Empty accepts any host key.
	KnownHostsPath string
	Timeout        time.Duration
	MaxRetries     int
}

type SSHClient struct {
	config SSHConfig
}

func NewSSHClient(cfg SSHConfig) *SSHClient {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &SSHClient{config: cfg}
}

func (c *SSHClient) Address() string {
	return net.JoinHostPort(c.config.Host, fmt.Sprint(c.config.Port))
}

func (c *SSHClient) getAuthMethods() ([]ssh.AuthMethod, error) {
	var authMethods []ssh.AuthMethod

	if c.config.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(c.config.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid private key", ErrSSHAuthentication)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	if c.config.Password != "" {
		authMethods = append(authMethods, ssh.Password(c.config.Password))
	}

	if len(authMethods) == 0 {
		return nil, fmt.Errorf("%w: no credentials provided", ErrSSHAuthentication)
	}

	return authMethods, nil
}

func (c *SSHClient) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.config.KnownHostsPath == "" {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(c.config.KnownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load known hosts: %v", ErrSSHConnection, err)
	}
	return cb, nil
}

// Connect dials the server, retrying with linear backoff until MaxRetries
// attempts fail or ctx is done.
func (c *SSHClient) Connect(ctx context.Context) (*ssh.Client, error) {
	authMethods, err := c.getAuthMethods()
	if err != nil {
		return nil, err
	}
	hostKeyCallback, err := c.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         c.config.Timeout,
	}

	addr := c.Address()
	var connectErr error

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		dialer := net.Dialer{
			Timeout:   c.config.Timeout,
			KeepAlive: 30 * time.Second,
		}

		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			connectErr = err
		} else {
			_ = conn.SetDeadline(time.Now().Add(c.config.Timeout))

			sc, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
			if err != nil {
				conn.Close()
				connectErr = err
			} else {
				_ = conn.SetDeadline(time.Time{})
				return ssh.NewClient(sc, chans, reqs), nil
			}
		}

		if attempt < c.config.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrSSHConnection, ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	if isTimeout(connectErr) {
		return nil, fmt.Errorf("%w: %v (after %d attempts)", ErrSSHTimeout, connectErr, c.config.MaxRetries)
	}
	return nil, fmt.Errorf("%w: %v (after %d attempts)", ErrSSHConnection, connectErr, c.config.MaxRetries)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline")
}

// Upload connects, writes data to remoteDir/name over SFTP and returns the
// remote path.
func (c *SSHClient) Upload(ctx context.Context, remoteDir, name string, data []byte) (string, error) {
	client, err := c.Connect(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create sftp client: %v", ErrUploadFailed, err)
	}
	defer sftpClient.Close()

	return UploadFile(sftpClient, remoteDir, name, data)
}

// UploadFile writes to a temporary name first and renames it into place, so
// readers never see a partial file.
func UploadFile(client *sftp.Client, remoteDir, name string, data []byte) (string, error) {
	if remoteDir != "" {
		if err := client.MkdirAll(remoteDir); err != nil {
			return "", fmt.Errorf("%w: create %s: %v", ErrUploadFailed, remoteDir, err)
		}
	}

	target := path.Join(remoteDir, name)
	tempPath := target + ".part"

	remoteFile, err := client.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create remote file: %v", ErrUploadFailed, err)
	}

	written, err := remoteFile.Write(data)
	closeErr := remoteFile.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, closeErr)
	}
	if written != len(data) {
		return "", fmt.Errorf("%w: expected %d bytes, wrote %d", ErrUploadFailed, len(data), written)
	}

	if err := client.Rename(tempPath, target); err != nil {
		return "", fmt.Errorf("%w: rename into place: %v", ErrUploadFailed, err)
	}
	return target, nil
}
