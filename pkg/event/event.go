package event

import (
	"encoding/json"
	"fmt"
	"time"
)

type Name string

const (
	PermissionsGranted Name = "PermissionsGranted"
)

// Event is the audit record published after a run, describing which services
// were processed for which application.
type Event struct {
	ID          string      `json:"@id"`
	EventName   Name        `json:"@event_name"`
	Application Application `json:"application"`
	Services    []Service   `json:"services"`
	Timestamp   time.Time   `json:"timestamp"`
}

type Application struct {
	ClientId    string `json:"clientId"`
	DisplayName string `json:"displayName"`
	Tenant      string `json:"tenant"`
}

type Service struct {
	Name    string   `json:"name"`
	Granted []string `json:"granted,omitempty"`
	Failed  bool     `json:"failed,omitempty"`
}

func NewEvent(id string, app Application, services []Service) Event {
	return Event{
		ID:          id,
		EventName:   PermissionsGranted,
		Application: app,
		Services:    services,
		Timestamp:   time.Now().UTC(),
	}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e Event) String() string {
	return fmt.Sprintf("%s (%s)", e.EventName, e.ID)
}
