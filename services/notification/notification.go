package notification

import (
	"fmt"
	"log"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Severity classifies a toast message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Service is the outcome sink. Calls are fire-and-forget: the caller logs a
// delivery failure and moves on.
type Service interface {
	Notify(title, message string, severity Severity) error
}

// Message is the wire shape pushed to connected admin sessions.
type Message struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// MelodyService broadcasts notifications over the admin websocket.
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Notify(title, message string, severity Severity) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(Message{Title: title, Message: message, Severity: severity})
	if err != nil {
		return err
	}
	return s.m.Broadcast(payload)
}

// LogService writes notifications to the process log. Used when no
// websocket hub is wired, and as the default in tests.
type LogService struct{}

func NewLogService() *LogService {
	return &LogService{}
}

func (s *LogService) Notify(title, message string, severity Severity) error {
	log.Printf("[%s] %s: %s", severity, title, message)
	return nil
}
