package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"eventhub/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(name, email string) *domain.User {
	u := &domain.User{ID: fmt.Sprintf("user-%d", f.nextID), Name: name, Email: email, PasswordHash: "hash", Salt: "salt"}
	f.nextID++
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeEventRepo is an in-memory EventRepository for tests. Attendee order is join order.
type fakeEventRepo struct {
	mu        sync.Mutex
	users     *fakeUserRepo
	byID      map[string]*domain.Event
	order     []string
	nextID    int
	createErr error
	addErr    error
	countErr  error
}

func newFakeEventRepo(users *fakeUserRepo) *fakeEventRepo {
	return &fakeEventRepo{users: users, byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	stored := *e
	stored.Attendees = append([]string{}, e.Attendees...)
	f.byID[e.ID] = &stored
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	cp.Attendees = append([]string{}, e.Attendees...)
	return &cp, nil
}

func (f *fakeEventRepo) detail(e *domain.Event) *domain.EventDetail {
	d := &domain.EventDetail{Event: *e, Attendees: []domain.UserSummary{}}
	d.Event.Attendees = append([]string{}, e.Attendees...)
	if owner, ok := f.users.byID[e.PlannedBy]; ok {
		s := owner.Summary()
		d.PlannedBy = &s
	}
	for _, id := range e.Attendees {
		if u, ok := f.users.byID[id]; ok {
			d.Attendees = append(d.Attendees, u.Summary())
		}
	}
	return d
}

func (f *fakeEventRepo) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return f.detail(e), nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventDetail
	// newest first
	for i := len(f.order) - 1; i >= 0; i-- {
		e, ok := f.byID[f.order[i]]
		if !ok {
			continue
		}
		if filter.PlannedBy != "" && e.PlannedBy != filter.PlannedBy {
			continue
		}
		if filter.AttendeeID != "" && !e.HasAttendee(filter.AttendeeID) {
			continue
		}
		out = append(out, f.detail(e))
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return false, f.addErr
	}
	e, ok := f.byID[eventID]
	if !ok {
		return false, domain.ErrEventNotFound
	}
	if _, ok := f.users.byID[userID]; !ok {
		return false, domain.ErrUserNotFound
	}
	if e.HasAttendee(userID) {
		return false, nil
	}
	e.Attendees = append(e.Attendees, userID)
	return true, nil
}

func (f *fakeEventRepo) RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[eventID]
	if !ok {
		return false, nil
	}
	for i, id := range e.Attendees {
		if id == userID {
			e.Attendees = append(e.Attendees[:i], e.Attendees[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) CountAttendees(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	e, ok := f.byID[eventID]
	if !ok {
		return 0, nil
	}
	return len(e.Attendees), nil
}

// notification is one NotifyAttendees call.
type notification struct {
	EventID string
	Count   int
}

// fakeNotifier records attendee count notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (f *fakeNotifier) NotifyAttendees(eventID string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notification{EventID: eventID, Count: count})
}

func (f *fakeNotifier) sorted() []notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]notification{}, f.calls...)
	sort.Slice(out, func(i, j int) bool { return out[i].Count < out[j].Count })
	return out
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	saltErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// fakeEmailService records welcome emails.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}
