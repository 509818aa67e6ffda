package domain

import (
	"context"
	"time"
)

// Event represents an event planned by a user. Attendees holds the ids of the
// users attending; PlannedBy is the owner and never changes after creation.
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Venue         *string   `json:"venue,omitempty"`
	ContactEmail  string    `json:"contactEmail"`
	IsOnline      bool      `json:"isOnline"`
	Attendees     []string  `json:"attendees"`
	PlannedBy     string    `json:"plannedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewEvent returns a new Event owned by plannedBy. ID is set by the repository on create.
func NewEvent(in CreateEventInput, plannedBy string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:          in.Name,
		Description:   in.Description,
		Type:          in.Type,
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		Venue:         in.Venue,
		ContactEmail:  in.ContactEmail,
		IsOnline:      in.IsOnline,
		Attendees:     []string{},
		PlannedBy:     plannedBy,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// HasAttendee reports whether userID is in the attendee set.
func (e *Event) HasAttendee(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// EventDetail is an Event with its owner and attendees resolved to summaries.
// swagger:model EventDetail
type EventDetail struct {
	Event
	PlannedBy *UserSummary  `json:"plannedBy"`
	Attendees []UserSummary `json:"attendees"`
}

// CreateEventInput holds the caller-supplied fields of a new event.
type CreateEventInput struct {
	Name          string
	Description   string
	Type          string
	StartDateTime time.Time
	EndDateTime   time.Time
	Venue         *string
	ContactEmail  string
	IsOnline      bool
}

// EventFilter narrows List queries. Zero values match everything.
type EventFilter struct {
	PlannedBy  string
	AttendeeID string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetDetail(ctx context.Context, id string) (*EventDetail, error)
	List(ctx context.Context, filter EventFilter) ([]*EventDetail, error)
	Delete(ctx context.Context, id string) error
	// AddAttendee inserts userID into the attendee set. added is false when it was already present.
	AddAttendee(ctx context.Context, eventID, userID string) (added bool, err error)
	// RemoveAttendee removes userID from the attendee set. removed is false when it was absent.
	RemoveAttendee(ctx context.Context, eventID, userID string) (removed bool, err error)
	CountAttendees(ctx context.Context, eventID string) (int, error)
}

// EventService defines the business logic for events and attendance.
type EventService interface {
	Create(ctx context.Context, ownerID string, in CreateEventInput) (*Event, error)
	ListAll(ctx context.Context) ([]*EventDetail, error)
	ListOwnedBy(ctx context.Context, userID string) ([]*EventDetail, error)
	ListAttending(ctx context.Context, userID string) ([]*EventDetail, error)
	GetByID(ctx context.Context, eventID string) (*EventDetail, error)
	DeleteByID(ctx context.Context, eventID, requesterID string) error
	// Attend adds userID to the event, failing with ErrAlreadyAttending on a repeat.
	Attend(ctx context.Context, eventID, userID string) (*Event, error)
	// Leave removes userID from the event, failing with ErrNotAttending when absent.
	Leave(ctx context.Context, eventID, userID string) (*Event, error)
	// Join and Depart are the idempotent realtime mutations; both return the new attendee count.
	Join(ctx context.Context, eventID, userID string) (int, error)
	Depart(ctx context.Context, eventID, userID string) (int, error)
}

// AttendanceNotifier is told about attendee count changes so it can fan them out.
type AttendanceNotifier interface {
	NotifyAttendees(eventID string, count int)
}
