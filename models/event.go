package models

import (
	"fmt"
	"strings"
	"time"
)

// EventStatus соответствует ENUM event_status в БД.
type EventStatus string

const (
	EventStatusActive   EventStatus = "active"
	EventStatusInactive EventStatus = "inactive"
)

// ParseEventStatus приводит значение с провода к нижнему регистру и
// отклоняет всё вне закрытого набора.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(strings.ToLower(strings.TrimSpace(s))) {
	case EventStatusActive:
		return EventStatusActive, nil
	case EventStatusInactive:
		return EventStatusInactive, nil
	default:
		return "", fmt.Errorf("invalid event status %q", s)
	}
}

// Event представляет забег (мероприятие).
type Event struct {
	ID         int         `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Place      string      `json:"place" db:"place"`
	Status     EventStatus `json:"status" db:"status"`
	StartTime  *time.Time  `json:"start_time,omitempty" db:"start_time"`
	EndTime    *time.Time  `json:"end_time,omitempty" db:"end_time"`
	CategoryID *int        `json:"category_id,omitempty" db:"category_id"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	LogoKey    *string     `json:"-" db:"logo_key"`
	LogoURL    *string     `json:"logo_url,omitempty" db:"-"`
}
