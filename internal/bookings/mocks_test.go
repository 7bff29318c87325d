package bookings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventures/internal/draft"
	"eventures/internal/notifications"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateWithPayment(ctx context.Context, booking *Booking, payment *Payment) error {
	args := m.Called(ctx, booking, payment)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, customerID, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) ListAll(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (*Booking, error) {
	args := m.Called(ctx, id, cancelledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

// fakeDrafts serves drafts from memory and records claims and resets
type fakeDrafts struct {
	mu       sync.Mutex
	drafts   map[uuid.UUID]*draft.Draft
	claims   []uuid.UUID
	releases []uuid.UUID
	resets   []uuid.UUID
	claimErr error
	resetErr error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: make(map[uuid.UUID]*draft.Draft)}
}

func (f *fakeDrafts) Claim(_ context.Context, customerID, bookingID uuid.UUID) (*draft.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	d, ok := f.drafts[customerID]
	if !ok {
		d = draft.New()
		f.drafts[customerID] = d
	}
	if !d.Claim(bookingID, time.Now(), time.Minute) {
		return nil, draft.ErrCheckoutInProgress
	}
	f.claims = append(f.claims, bookingID)
	return d.Clone(), nil
}

func (f *fakeDrafts) Release(_ context.Context, customerID, bookingID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases = append(f.releases, bookingID)
	if d, ok := f.drafts[customerID]; ok {
		d.Release(bookingID)
	}
	return nil
}

func (f *fakeDrafts) Reset(_ context.Context, customerID uuid.UUID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, customerID)
	if f.resetErr != nil {
		return f.resetErr
	}
	delete(f.drafts, customerID)
	return nil
}

type fakeContacts struct {
	email, name string
	err         error
}

func (f fakeContacts) GetContact(context.Context, uuid.UUID) (string, string, error) {
	return f.email, f.name, f.err
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []*notifications.BookingNotification
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, n *notifications.BookingNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var errBroker = errors.New("kafka: client has run out of available brokers")
