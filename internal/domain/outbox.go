package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JSONB is a type for handling JSONB fields so GORM can automatically
// marshal/unmarshal them.
type JSONB map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Outbox event types emitted by this service
const (
	EventTypeCoinsChanged  = "economy.coins_changed"
	EventTypeRoundRecorded = "game.round_recorded"
)

// Outbox event statuses
const (
	EventStatusPending   = "PENDING"
	EventStatusProcessed = "PROCESSED"
	EventStatusFailed    = "FAILED"
)

// OutboxEvent represents an event stored in the outbox. Events are written in
// the same database transaction as the state change they describe and
// delivered asynchronously by the outbox processor.
type OutboxEvent struct {
	ID          int64      `json:"id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	Type        string     `json:"type" gorm:"type:varchar(64);not null"`
	Data        JSONB      `json:"data" gorm:"type:jsonb"`
	Status      string     `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count" gorm:"default:0"`
}

// TableName specifies the table name for OutboxEvent
func (o OutboxEvent) TableName() string {
	return "outbox_events"
}

// OutboxRepository defines the interface for outbox persistence
type OutboxRepository interface {
	Save(event *OutboxEvent) error
	GetPendingEvents(limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(eventID int64) error
	MarkAsFailed(eventID int64, errMsg string) error
	IncrementRetryCount(eventID int64) error
	WithTransaction(tx *gorm.DB) OutboxRepository
}

// EventNotifier delivers outbox events to the game platform
type EventNotifier interface {
	Notify(eventType string, data JSONB) error
}

// OutboxProcessor drains pending outbox events
type OutboxProcessor interface {
	Start(interval time.Duration)
	Stop()
	ProcessEvents() error
}
