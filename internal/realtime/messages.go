package realtime

import (
	"encoding/json"
	"errors"

	"eventhub/internal/domain"
)

// Socket event names.
const (
	EventJoin            = "join_event"
	EventLeave           = "leave_event"
	EventUpdateAttendees = "update_attendees"
	EventError           = "error"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AttendancePayload is the data of join_event and leave_event.
type AttendancePayload struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}

// AttendeesUpdate is the data of update_attendees.
type AttendeesUpdate struct {
	EventID        string `json:"eventId"`
	AttendeesCount int    `json:"attendeesCount"`
}

// ErrorPayload is sent back to the connection whose request failed.
type ErrorPayload struct {
	Event   string `json:"event"`
	EventID string `json:"eventId,omitempty"`
	Message string `json:"message"`
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: event, Data: raw})
}

// errorMessage maps a failed attendance call to the text shown to the client.
func errorMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"
	default:
		return "Failed to update attendance"
	}
}
