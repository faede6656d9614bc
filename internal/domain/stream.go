package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamNavigationAnnounce = "stream:navigation:announce"
	StreamSafetyCheck        = "stream:safety:check"
	StreamSafetyDone         = "stream:safety:done"
)

// SafetyCheckKind - тип проверки безопасности
type SafetyCheckKind string

const (
	SafetyCheckLocation SafetyCheckKind = "location"
	SafetyCheckRoute    SafetyCheckKind = "route"
)

// SafetyCheckEvent - входящая задача на проверку безопасности
type SafetyCheckEvent struct {
	JobID uuid.UUID       `json:"job_id"`
	Kind  SafetyCheckKind `json:"kind"`
	From  *Coordinate     `json:"from,omitempty"`
	To    *Coordinate     `json:"to,omitempty"`
}

// Validate проверяет, что для типа задачи есть нужные координаты
func (e *SafetyCheckEvent) Validate() error {
	if e.From == nil {
		return fmt.Errorf("safety check %s: missing from", e.JobID)
	}
	if err := e.From.Validate(); err != nil {
		return err
	}
	switch e.Kind {
	case SafetyCheckLocation:
		return nil
	case SafetyCheckRoute:
		if e.To == nil {
			return fmt.Errorf("safety check %s: route without destination", e.JobID)
		}
		return e.To.Validate()
	default:
		return fmt.Errorf("safety check %s: unknown kind %q", e.JobID, e.Kind)
	}
}

// SafetyDoneEvent - результат проверки
type SafetyDoneEvent struct {
	JobID    uuid.UUID           `json:"job_id"`
	Kind     SafetyCheckKind     `json:"kind"`
	Location *LocationRiskResult `json:"location,omitempty"`
	Route    *RouteRiskResult    `json:"route,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// AnnouncementEvent - озвучка для аудио-клиента
type AnnouncementEvent struct {
	DeviceID string               `json:"device_id"`
	Text     string               `json:"text"`
	Category AnnouncementCategory `json:"category"`
	Cue      Cue                  `json:"cue,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
