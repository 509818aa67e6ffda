package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	notifier       domain.AttendanceNotifier
	contextTimeout time.Duration
}

// NewEventService creates an EventService. notifier may be nil; when set it is told
// about every attendee count change made through Attend, Leave, Join and Depart.
func NewEventService(eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	notifier domain.AttendanceNotifier,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		contextTimeout: timeout,
	}
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func validateCreateEventInput(in *domain.CreateEventInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if in.Venue != nil {
		venue := strings.TrimSpace(*in.Venue)
		if venue == "" {
			in.Venue = nil
		} else {
			in.Venue = &venue
		}
	}

	var problems []string
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if in.Description == "" {
		problems = append(problems, "description is required")
	}
	if in.Type == "" {
		problems = append(problems, "type is required")
	}
	if in.StartDateTime.IsZero() {
		problems = append(problems, "startDateTime is required")
	}
	if in.EndDateTime.IsZero() {
		problems = append(problems, "endDateTime is required")
	}
	if !in.StartDateTime.IsZero() && !in.EndDateTime.IsZero() && in.EndDateTime.Before(in.StartDateTime) {
		problems = append(problems, "endDateTime must not be before startDateTime")
	}
	if in.ContactEmail == "" {
		problems = append(problems, "contactEmail is required")
	} else if !emailRegexp.MatchString(in.ContactEmail) {
		problems = append(problems, "contactEmail is not a valid email address")
	}
	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	return nil
}

func (s *eventService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, ownerID string, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := validateCreateEventInput(&in); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	now := time.Now()
	event := domain.NewEvent(in, ownerID, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.EventDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.list(ctx, domain.EventFilter{})
}

func (s *eventService) ListOwnedBy(ctx context.Context, userID string) ([]*domain.EventDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.EventFilter{PlannedBy: userID})
}

func (s *eventService) ListAttending(ctx context.Context, userID string) ([]*domain.EventDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.EventFilter{AttendeeID: userID})
}

func (s *eventService) list(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetail, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventDetail{}
	}
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.GetDetail(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteByID(ctx context.Context, eventID, requesterID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if requesterID == "" {
		return domain.ErrUnauthenticated
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.PlannedBy != requesterID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) Attend(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.HasAttendee(userID) {
		return nil, domain.ErrAlreadyAttending
	}
	// The insert is the authoritative check: a concurrent attend of the same
	// user loses here even if it passed the read above.
	added, err := s.eventRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("add attendee: %w", err)
	}
	if !added {
		return nil, domain.ErrAlreadyAttending
	}
	event.Attendees = append(event.Attendees, userID)
	if _, err := s.countAndNotify(ctx, eventID); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Leave(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	removed, err := s.eventRepo.RemoveAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("remove attendee: %w", err)
	}
	if !removed {
		return nil, domain.ErrNotAttending
	}
	remaining := make([]string, 0, len(event.Attendees))
	for _, id := range event.Attendees {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	event.Attendees = remaining
	if _, err := s.countAndNotify(ctx, eventID); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Join(ctx context.Context, eventID, userID string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if userID == "" {
		return 0, domain.NewValidationError("userId is required")
	}
	if _, err := s.eventRepo.AddAttendee(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("add attendee: %w", err)
	}
	return s.countAndNotify(ctx, eventID)
}

func (s *eventService) Depart(ctx context.Context, eventID, userID string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if userID == "" {
		return 0, domain.NewValidationError("userId is required")
	}
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return 0, err
	}
	if _, err := s.eventRepo.RemoveAttendee(ctx, eventID, userID); err != nil {
		return 0, fmt.Errorf("remove attendee: %w", err)
	}
	return s.countAndNotify(ctx, eventID)
}

func (s *eventService) countAndNotify(ctx context.Context, eventID string) (int, error) {
	count, err := s.eventRepo.CountAttendees(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	s.notify(eventID, count)
	return count, nil
}

func (s *eventService) notify(eventID string, count int) {
	if s.notifier != nil {
		s.notifier.NotifyAttendees(eventID, count)
	}
}
