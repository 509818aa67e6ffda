package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const eventColumns = `e.id, e.name, e.description, e.type, e.start_date_time, e.end_date_time,
		       e.venue, e.contact_email, e.is_online, e.planned_by, e.created_at, e.updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent scans eventColumns followed by any extra destinations.
func scanEvent(row rowScanner, e *domain.Event, extra ...any) error {
	var venue sql.NullString
	dest := []any{
		&e.ID, &e.Name, &e.Description, &e.Type, &e.StartDateTime, &e.EndDateTime,
		&venue, &e.ContactEmail, &e.IsOnline, &e.PlannedBy, &e.CreatedAt, &e.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	if venue.Valid {
		e.Venue = &venue.String
	}
	return nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, type, start_date_time, end_date_time, venue, contact_email, is_online, planned_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var venue sql.NullString
	if e.Venue != nil {
		venue = sql.NullString{String: *e.Venue, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Type, e.StartDateTime, e.EndDateTime,
		venue, e.ContactEmail, e.IsOnline, e.PlannedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isPgCode(err, pgForeignKeyViolation) || isMalformedID(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `,
		       COALESCE(array_agg(a.user_id::text ORDER BY a.joined_at) FILTER (WHERE a.user_id IS NOT NULL), '{}') AS attendees
		FROM events e
		LEFT JOIN event_attendees a ON a.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`
	e := &domain.Event{}
	var attendees pq.StringArray
	if err := scanEvent(r.DB.QueryRowContext(ctx, query, id), e, &attendees); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e.Attendees = []string(attendees)
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	return e, nil
}

func (r *eventRepository) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	events, err := r.listDetails(ctx, "WHERE e.id = $1", id)
	if err != nil {
		if isMalformedID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrEventNotFound
	}
	return events[0], nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetail, error) {
	var (
		conds []string
		args  []any
	)
	if filter.PlannedBy != "" {
		args = append(args, filter.PlannedBy)
		conds = append(conds, fmt.Sprintf("e.planned_by = $%d", len(args)))
	}
	if filter.AttendeeID != "" {
		args = append(args, filter.AttendeeID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM event_attendees x WHERE x.event_id = e.id AND x.user_id = $%d)", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	events, err := r.listDetails(ctx, where, args...)
	if err != nil {
		if isMalformedID(err) {
			return []*domain.EventDetail{}, nil
		}
		return nil, err
	}
	return events, nil
}

// listDetails loads events matching where together with their owner, then resolves
// attendees for the whole page in a single query.
func (r *eventRepository) listDetails(ctx context.Context, where string, args ...any) ([]*domain.EventDetail, error) {
	query := `
		SELECT ` + eventColumns + `, o.id, o.name, o.email
		FROM events e
		JOIN users o ON o.id = e.planned_by
		` + where + `
		ORDER BY e.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventDetail, 0)
	byID := make(map[string]*domain.EventDetail)
	var ids []string
	for rows.Next() {
		d := &domain.EventDetail{}
		var owner domain.User
		if err := scanEvent(rows, &d.Event, &owner.ID, &owner.Name, &owner.Email); err != nil {
			return nil, err
		}
		summary := owner.Summary()
		d.PlannedBy = &summary
		d.Event.Attendees = []string{}
		d.Attendees = []domain.UserSummary{}
		events = append(events, d)
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return events, nil
	}

	attendeeQuery := `
		SELECT a.event_id, u.id, u.name, u.email
		FROM event_attendees a
		JOIN users u ON u.id = a.user_id
		WHERE a.event_id = ANY($1)
		ORDER BY a.joined_at
	`
	attendeeRows, err := r.DB.QueryContext(ctx, attendeeQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	defer attendeeRows.Close()
	for attendeeRows.Next() {
		var eventID string
		var u domain.User
		if err := attendeeRows.Scan(&eventID, &u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		if d, ok := byID[eventID]; ok {
			d.Attendees = append(d.Attendees, u.Summary())
			d.Event.Attendees = append(d.Event.Attendees, u.ID)
		}
	}
	if err := attendeeRows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isMalformedID(err) {
			return domain.ErrEventNotFound
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		INSERT INTO event_attendees (event_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if pqErr, ok := pgError(err); ok && string(pqErr.Code) == pgForeignKeyViolation {
			if strings.Contains(pqErr.Constraint, "user_id") {
				return false, domain.ErrUserNotFound
			}
			return false, domain.ErrEventNotFound
		}
		if isMalformedID(err) {
			return false, malformedAttendeeError(eventID, userID)
		}
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// malformedAttendeeError tells apart which id of an attendee insert Postgres
// refused to cast to uuid.
func malformedAttendeeError(eventID, userID string) error {
	if uuid.Validate(eventID) != nil {
		return domain.ErrEventNotFound
	}
	if uuid.Validate(userID) != nil {
		return domain.NewValidationError("userId is not a valid id")
	}
	return domain.ErrEventNotFound
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if isMalformedID(err) {
			return false, nil
		}
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *eventRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
