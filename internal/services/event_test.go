package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Name:          "Go Meetup",
		Description:   "Monthly meetup",
		Type:          "meetup",
		StartDateTime: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
		ContactEmail:  "host@example.com",
	}
}

type eventFixture struct {
	users    *fakeUserRepo
	events   *fakeEventRepo
	notifier *fakeNotifier
	svc      domain.EventService
	alice    *domain.User
	bob      *domain.User
}

func newEventFixture() *eventFixture {
	users := newFakeUserRepo()
	events := newFakeEventRepo(users)
	notifier := &fakeNotifier{}
	return &eventFixture{
		users:    users,
		events:   events,
		notifier: notifier,
		svc:      NewEventService(events, users, notifier, time.Second),
		alice:    users.add("Alice", "alice@example.com"),
		bob:      users.add("Bob", "bob@example.com"),
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets owner and empty attendees", func(t *testing.T) {
		fx := newEventFixture()
		in := validInput()
		venue := "  Hall 1 "
		in.Venue = &venue
		in.Name = "  Go Meetup  "

		event, err := fx.svc.Create(ctx, fx.alice.ID, in)
		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Go Meetup", event.Name)
		assert.Equal(t, fx.alice.ID, event.PlannedBy)
		assert.Equal(t, []string{}, event.Attendees)
		require.NotNil(t, event.Venue)
		assert.Equal(t, "Hall 1", *event.Venue)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("validation errors", func(t *testing.T) {
		fx := newEventFixture()
		tests := []struct {
			name   string
			modify func(in *domain.CreateEventInput)
			want   string
		}{
			{"missing name", func(in *domain.CreateEventInput) { in.Name = " " }, "name is required"},
			{"missing description", func(in *domain.CreateEventInput) { in.Description = "" }, "description is required"},
			{"missing type", func(in *domain.CreateEventInput) { in.Type = "" }, "type is required"},
			{"missing start", func(in *domain.CreateEventInput) { in.StartDateTime = time.Time{} }, "startDateTime is required"},
			{"end before start", func(in *domain.CreateEventInput) {
				in.EndDateTime = in.StartDateTime.Add(-time.Hour)
			}, "endDateTime must not be before startDateTime"},
			{"bad contact email", func(in *domain.CreateEventInput) { in.ContactEmail = "nope" }, "contactEmail is not a valid email address"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput()
				tt.modify(&in)
				_, err := fx.svc.Create(ctx, fx.alice.ID, in)
				require.ErrorIs(t, err, domain.ErrValidation)
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Problems, tt.want)
			})
		}
		assert.Empty(t, fx.events.byID)
	})

	t.Run("empty owner is unauthenticated", func(t *testing.T) {
		fx := newEventFixture()
		_, err := fx.svc.Create(ctx, "", validInput())
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown owner", func(t *testing.T) {
		fx := newEventFixture()
		_, err := fx.svc.Create(ctx, "ghost", validInput())
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		fx := newEventFixture()
		fx.events.createErr = errors.New("db down")
		_, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create event")
	})
}

func TestEventService_Lists(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()

	first, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)
	second, err := fx.svc.Create(ctx, fx.bob.ID, validInput())
	require.NoError(t, err)
	_, err = fx.svc.Attend(ctx, first.ID, fx.bob.ID)
	require.NoError(t, err)

	all, err := fx.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	owned, err := fx.svc.ListOwnedBy(ctx, fx.alice.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, first.ID, owned[0].ID)
	assert.Equal(t, &domain.UserSummary{ID: fx.alice.ID, Name: "Alice", Email: "alice@example.com"}, owned[0].PlannedBy)

	attending, err := fx.svc.ListAttending(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, attending, 1)
	assert.Equal(t, []domain.UserSummary{fx.bob.Summary()}, attending[0].Attendees)

	none, err := fx.svc.ListAttending(ctx, fx.alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = fx.svc.ListOwnedBy(ctx, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = fx.svc.ListAttending(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEventService_GetByID(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	got, err := fx.svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.PlannedBy.Name)
	assert.Empty(t, got.Attendees)

	_, err = fx.svc.GetByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_DeleteByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requester func(fx *eventFixture) string
		eventID   func(id string) string
		wantErr   error
	}{
		{"owner deletes", func(fx *eventFixture) string { return fx.alice.ID }, func(id string) string { return id }, nil},
		{"non owner forbidden", func(fx *eventFixture) string { return fx.bob.ID }, func(id string) string { return id }, domain.ErrForbidden},
		{"anonymous", func(fx *eventFixture) string { return "" }, func(id string) string { return id }, domain.ErrUnauthenticated},
		{"missing event", func(fx *eventFixture) string { return fx.alice.ID }, func(string) string { return "missing" }, domain.ErrEventNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newEventFixture()
			event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
			require.NoError(t, err)

			err = fx.svc.DeleteByID(ctx, tt.eventID(event.ID), tt.requester(fx))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, getErr := fx.svc.GetByID(ctx, event.ID)
				require.NoError(t, getErr)
				return
			}
			require.NoError(t, err)
			_, err = fx.svc.GetByID(ctx, event.ID)
			require.ErrorIs(t, err, domain.ErrEventNotFound)
		})
	}
}

func TestEventService_AttendLeave(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	got, err := fx.svc.Attend(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.bob.ID}, got.Attendees)
	assert.Equal(t, fx.alice.ID, got.PlannedBy)

	_, err = fx.svc.Attend(ctx, event.ID, fx.bob.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyAttending)

	stored, err := fx.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.bob.ID}, stored.Attendees)

	got, err = fx.svc.Leave(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Attendees)

	_, err = fx.svc.Leave(ctx, event.ID, fx.bob.ID)
	require.ErrorIs(t, err, domain.ErrNotAttending)

	_, err = fx.svc.Attend(ctx, "missing", fx.bob.ID)
	require.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = fx.svc.Attend(ctx, event.ID, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Equal(t, []notification{{event.ID, 1}, {event.ID, 0}}, fx.notifier.calls)
}

func TestEventService_Attend_store_failure_does_not_notify(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	fx.events.addErr = errors.New("db down")
	_, err = fx.svc.Attend(ctx, event.ID, fx.bob.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add attendee")
	assert.Empty(t, fx.notifier.calls)
}

func TestEventService_JoinDepart(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	count, err := fx.svc.Join(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// repeat join is idempotent
	count, err = fx.svc.Join(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = fx.svc.Join(ctx, event.ID, fx.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = fx.svc.Depart(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// departing when absent still reports the count
	count, err = fx.svc.Depart(ctx, event.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, []notification{
		{event.ID, 1}, {event.ID, 1}, {event.ID, 2}, {event.ID, 1}, {event.ID, 1},
	}, fx.notifier.calls)

	_, err = fx.svc.Join(ctx, "missing", fx.bob.ID)
	require.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = fx.svc.Depart(ctx, "missing", fx.bob.ID)
	require.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = fx.svc.Join(ctx, event.ID, "")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, fx.notifier.calls, 5)
}

func TestEventService_Join_count_failure(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	fx.events.countErr = errors.New("db down")
	_, err = fx.svc.Join(ctx, event.ID, fx.bob.ID)
	require.Error(t, err)
	assert.Empty(t, fx.notifier.calls)
}

func TestEventService_concurrent_joins(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	var joiners []string
	for i := 0; i < 10; i++ {
		joiners = append(joiners, fx.users.add("u", "u@example.com").ID)
	}

	var wg sync.WaitGroup
	for _, id := range joiners {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := fx.svc.Join(ctx, event.ID, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	stored, err := fx.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, joiners, stored.Attendees)

	calls := fx.notifier.sorted()
	require.Len(t, calls, len(joiners))
	assert.Equal(t, len(joiners), calls[len(calls)-1].Count)
}

// readBarrier holds the first n event reads until all of them have happened.
type readBarrier struct {
	*fakeEventRepo
	mu      sync.Mutex
	pending int
	release chan struct{}
}

func newReadBarrier(repo *fakeEventRepo, n int) *readBarrier {
	return &readBarrier{fakeEventRepo: repo, pending: n, release: make(chan struct{})}
}

func (b *readBarrier) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := b.fakeEventRepo.GetByID(ctx, id)
	b.mu.Lock()
	if b.pending == 0 {
		b.mu.Unlock()
		return e, err
	}
	b.pending--
	if b.pending == 0 {
		close(b.release)
	}
	b.mu.Unlock()
	<-b.release
	return e, err
}

func TestEventService_concurrent_attends(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)
	carol := fx.users.add("Carol", "carol@example.com")

	svc := NewEventService(newReadBarrier(fx.events, 2), fx.users, fx.notifier, time.Second)

	var wg sync.WaitGroup
	for _, id := range []string{fx.bob.ID, carol.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Attend(ctx, event.ID, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	stored, err := fx.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fx.bob.ID, carol.ID}, stored.Attendees)

	calls := fx.notifier.sorted()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].Count)

	// leave broadcasts the stored count too
	_, err = svc.Leave(ctx, event.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, notification{event.ID, 1}, fx.notifier.calls[2])
}

func TestEventService_Attend_count_failure(t *testing.T) {
	ctx := context.Background()
	fx := newEventFixture()
	event, err := fx.svc.Create(ctx, fx.alice.ID, validInput())
	require.NoError(t, err)

	fx.events.countErr = errors.New("db down")
	_, err = fx.svc.Attend(ctx, event.ID, fx.bob.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count attendees")
	assert.Empty(t, fx.notifier.calls)
}

func TestEventService_without_notifier(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	alice := users.add("Alice", "alice@example.com")
	svc := NewEventService(newFakeEventRepo(users), users, nil, 0)

	event, err := svc.Create(ctx, alice.ID, validInput())
	require.NoError(t, err)
	count, err := svc.Join(ctx, event.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
