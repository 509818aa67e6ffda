package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"

	"github.com/google/uuid"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	Type          string    `json:"type" validate:"required"`
	StartDateTime time.Time `json:"startDateTime" validate:"required"`
	EndDateTime   time.Time `json:"endDateTime" validate:"required,gtefield=StartDateTime"`
	Venue         *string   `json:"venue"`
	ContactEmail  string    `json:"contactEmail" validate:"required,email"`
	IsOnline      bool      `json:"isOnline"`
}

func (c CreateEventRequest) toInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Name:          c.Name,
		Description:   c.Description,
		Type:          c.Type,
		StartDateTime: c.StartDateTime,
		EndDateTime:   c.EndDateTime,
		Venue:         c.Venue,
		ContactEmail:  c.ContactEmail,
		IsOnline:      c.IsOnline,
	}
}

// EventResponse carries a single event with attendee and owner ids.
type EventResponse struct {
	helpers.Envelope
	Event *domain.Event `json:"event"`
}

// EventDetailResponse carries a single event with owner and attendees resolved.
type EventDetailResponse struct {
	helpers.Envelope
	Event *domain.EventDetail `json:"event"`
}

// EventListResponse carries a list of events with owner and attendees resolved.
type EventListResponse struct {
	helpers.Envelope
	Events []*domain.EventDetail `json:"events"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeError maps service errors to responses. notFound is the message used for
// a missing event.
func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthenticated, "Unauthorized")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "User not found.")
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// eventID reads and checks the {id} path value. It writes a 400 and returns
// false when the id is not a uuid.
func eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid event id.")
		return "", false
	}
	return id.String(), true
}

// Create godoc
// @Summary Create a new event
// @Description Create an event owned by the authenticated user. venue and isOnline are optional.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found (user)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthenticated, "Unauthorized")
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, EventResponse{Envelope: helpers.OK("Event created successfully!"), Event: event})
}

// ListAll godoc
// @Summary List all events
// @Description Returns every event, newest first, with owner and attendees resolved.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListResponse
// @Failure 404 {object} helpers.ErrorResponse "code: not_found (no events)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events [get]
func (c *EventController) ListAll(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAll(r.Context())
	c.writeList(w, r, events, err, "No events found.")
}

// ListMine godoc
// @Summary List my events
// @Description Returns the events planned by the authenticated user.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListResponse
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found (user or no events)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/mine [get]
func (c *EventController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := c.Service.ListOwnedBy(r.Context(), userID)
	c.writeList(w, r, events, err, "No events found for this user.")
}

// ListAttending godoc
// @Summary List events I attend
// @Description Returns the events whose attendees include the authenticated user.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListResponse
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found (user or no events)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/attending [get]
func (c *EventController) ListAttending(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := c.Service.ListAttending(r.Context(), userID)
	c.writeList(w, r, events, err, "No events found that you are attending.")
}

// writeList answers an empty result with 404 and the given message.
func (c *EventController) writeList(w http.ResponseWriter, r *http.Request, events []*domain.EventDetail, err error, empty string) {
	if err != nil {
		c.writeError(w, r, err, "Event not found.")
		return
	}
	if len(events) == 0 {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, empty)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{Envelope: helpers.OK("Events retrieved successfully!"), Events: events})
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns one event with owner and attendees resolved.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDetailResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventDetailResponse{Envelope: helpers.OK("Event retrieved successfully!"), Event: event})
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event. Only its planner may delete it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.Envelope
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := c.Service.DeleteByID(r.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Unauthorized: You can only delete events you created.")
			return
		}
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Event deleted successfully!")
}

// Attend godoc
// @Summary Attend an event
// @Description Adds the authenticated user to the event's attendees and broadcasts the new count.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request (already attending)"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{id}/attend [get]
func (c *EventController) Attend(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthenticated, "Login to attend the event.")
		return
	}
	event, err := c.Service.Attend(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAttending) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "You are already attending this event.")
			return
		}
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Envelope: helpers.OK("You have successfully registered for the event!"), Event: event})
}

// Leave godoc
// @Summary Leave an event
// @Description Removes the authenticated user from the event's attendees and broadcasts the new count.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request (not attending)"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{id}/attend [delete]
func (c *EventController) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthenticated, "Unauthorized")
		return
	}
	event, err := c.Service.Leave(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotAttending) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "You are not attending this event.")
			return
		}
		c.writeError(w, r, err, "Event not found.")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Envelope: helpers.OK("You have left the event."), Event: event})
}
