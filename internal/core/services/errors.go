package services

import (
	"errors"

	"github.com/taskdesk/backend/internal/domain"
)

// Task errors
var (
	ErrTaskNotFound     = domain.ErrTaskNotFound
	ErrTaskInvalidInput = errors.New("task: invalid input")
	ErrInvalidFilter    = errors.New("task: invalid filter")
)

// Auth errors
var (
	ErrUnauthorized   = errors.New("auth: unauthorized")
	ErrInvalidState   = errors.New("auth: invalid oauth state")
	ErrGoogleDisabled = errors.New("auth: google sign-in is not configured")
	ErrCodeExchange   = errors.New("auth: code exchange failed")
)

// Report errors
var (
	ErrReportRender  = errors.New("report: render failed")
	ErrReportArchive = errors.New("report: archive failed")
	ErrNoReportSink  = errors.New("report: no sink configured")
)

// Encryption errors
var (
	ErrEncryptionFailed = errors.New("encryption: failed to encrypt data")
	ErrDecryptionFailed = errors.New("encryption: failed to decrypt data")
)
