package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Task timeline event types
const (
	EventTypeTaskCreated = "TASK_CREATED"
	EventTypeTaskUpdated = "TASK_UPDATED"
	EventTypeTaskDeleted = "TASK_DELETED"
	EventTypeReportSaved = "REPORT_ARCHIVED"
)

const ResourceTypeTask = "task"
const ResourceTypeReport = "report"

type EventStatus string

const (
	EventStatusSuccess EventStatus = "success"
	EventStatusFailed  EventStatus = "failed"
)

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONB: invalid type")
	}
	return json.Unmarshal(bytes, j)
}

type TimelineEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Type         string      `gorm:"size:100;not null;index" json:"type"`
	Status       EventStatus `gorm:"size:20;not null;default:'success';index" json:"status"`
	Message      string      `gorm:"type:text" json:"message"`
	Meta         JSONB       `gorm:"type:jsonb" json:"meta"`
	ResourceID   string      `gorm:"size:64;index" json:"resource_id,omitempty"`
	ResourceType string      `gorm:"size:100;index" json:"resource_type"`
}
