package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventures/internal/draft"
	"eventures/internal/notifications"
	"eventures/pkg/logger"
)

// DraftSource is the part of the draft service checkout needs
type DraftSource interface {
	Claim(ctx context.Context, customerID, bookingID uuid.UUID) (*draft.Draft, error)
	Release(ctx context.Context, customerID, bookingID uuid.UUID) error
	Reset(ctx context.Context, customerID uuid.UUID, reason string) error
}

// ContactDirectory resolves where to send booking notifications
type ContactDirectory interface {
	GetContact(ctx context.Context, customerID uuid.UUID) (email, name string, err error)
}

// Requester identifies who is reading or changing a booking
type Requester struct {
	ID    uuid.UUID
	Admin bool
}

func (r Requester) canAccess(b *Booking) bool {
	return r.Admin || b.CustomerID == r.ID
}

type Service interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID, requester Requester) (*Booking, error)
	ListCustomerBookings(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, int64, error)
	ListAllBookings(ctx context.Context, query ListQuery) ([]Booking, int64, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, requester Requester) (*Booking, error)
}

type service struct {
	repo      Repository
	drafts    DraftSource
	contacts  ContactDirectory
	publisher notifications.Publisher
	currency  string
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, drafts DraftSource, contacts ContactDirectory, publisher notifications.Publisher, currency string) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	return &service{
		repo:      repo,
		drafts:    drafts,
		contacts:  contacts,
		publisher: publisher,
		currency:  currency,
		logger:    logger.GetDefault(),
		now:       time.Now,
	}
}

// Checkout turns the customer's draft into a paid booking. The draft is
// claimed first so two concurrent checkouts cannot both charge the same cart.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*Booking, error) {
	// Step 1: Claim the draft for this booking
	bookingID := uuid.New()
	d, err := s.drafts.Claim(ctx, customerID, bookingID)
	if err != nil {
		if errors.Is(err, draft.ErrCheckoutInProgress) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	booking, err := s.placeBooking(ctx, bookingID, customerID, d, req)
	if err != nil {
		if releaseErr := s.drafts.Release(ctx, customerID, bookingID); releaseErr != nil {
			s.logger.WarnWithContext(ctx, "Failed to release draft after checkout failure", releaseErr, map[string]interface{}{
				"customer_id": customerID.String(),
			})
		}
		return nil, err
	}

	s.logger.LogBookingSubmitted(ctx, booking.ID.String(), customerID.String(), booking.TotalAmount.StringFixed(2))

	// Step 5: Notify and clear the draft; neither can undo a paid booking
	s.notify(ctx, notifications.NotificationTypeBookingConfirmed, booking)

	if err := s.drafts.Reset(ctx, customerID, "checkout completed"); err != nil {
		s.logger.WarnWithContext(ctx, "Failed to reset draft after checkout", err, map[string]interface{}{
			"customer_id": customerID.String(),
			"booking_id":  booking.ID.String(),
		})
	}

	return booking, nil
}

func (s *service) placeBooking(ctx context.Context, bookingID, customerID uuid.UUID, d *draft.Draft, req CheckoutRequest) (*Booking, error) {
	// Step 2: Check the checkout gate and require complete event details
	if !d.CanProceed() {
		return nil, ErrDraftNotReady
	}
	if !d.HasEventInfo() || d.EventTypeID == nil || d.LocationID == nil || *d.GuestCount < 1 {
		return nil, ErrMissingEventInfo
	}
	bookingDate, err := time.Parse(time.RFC3339, d.EventDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date", ErrMissingEventInfo)
	}

	// Step 3: Snapshot the cart and compute the total
	now := s.now().UTC()
	bookingRef, err := generateBookingReference(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	total := d.GrandTotal()
	booking := &Booking{
		ID:           bookingID,
		BookingRef:   bookingRef,
		CustomerID:   customerID,
		EventTypeID:  d.EventTypeID,
		LocationID:   d.LocationID,
		EventType:    d.EventType,
		LocationName: d.LocationName,
		BookingDate:  bookingDate.UTC(),
		GuestCount:   *d.GuestCount,
		TotalAmount:  total,
		Currency:     s.currency,
		Status:       StatusConfirmed,
		Items:        snapshotItems(d.CartItems),
	}
	booking.setLocation(*d.EventLocation)

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = defaultPaymentMethod
	}
	payment := &Payment{
		Amount:        total,
		Currency:      s.currency,
		Status:        PaymentStatusPaid,
		PaymentMethod: method,
		TransactionID: generateTransactionID(now),
		CardHolder:    strings.TrimSpace(req.CardHolder),
		CardLast4:     req.CardLast4,
		PaidAt:        &now,
	}

	// Step 4: Persist booking and payment together
	if err := s.repo.CreateWithPayment(ctx, booking, payment); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID, requester Requester) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !requester.canAccess(booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *service) ListCustomerBookings(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, int64, error) {
	query.Normalize()
	return s.repo.ListByCustomer(ctx, customerID, query)
}

func (s *service) ListAllBookings(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	query.Normalize()
	return s.repo.ListAll(ctx, query)
}

// CancelBooking cancels a confirmed booking and refunds its payment
func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, requester Requester) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !requester.canAccess(booking) {
		return nil, ErrForbidden
	}
	if booking.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	cancelled, err := s.repo.Cancel(ctx, bookingID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.NotificationTypeBookingCancelled, cancelled)
	return cancelled, nil
}

// notify publishes a booking notification. Failures are logged only.
func (s *service) notify(ctx context.Context, t notifications.NotificationType, b *Booking) {
	n := notifications.NewBookingNotification(t, b.ID, b.CustomerID, b.BookingRef)
	n.EventType = b.EventType
	n.EventDateTime = b.BookingDate.Format(time.RFC3339)
	n.Total = b.TotalAmount.StringFixed(2)
	n.Currency = b.Currency

	if s.contacts != nil {
		email, name, err := s.contacts.GetContact(ctx, b.CustomerID)
		if err != nil {
			s.logger.WarnWithContext(ctx, "Failed to resolve customer contact", err, map[string]interface{}{
				"customer_id": b.CustomerID.String(),
			})
		}
		n.Email, n.Name = email, name
	}

	if err := s.publisher.Publish(ctx, n); err != nil {
		s.logger.WarnWithContext(ctx, "Failed to publish booking notification", err, map[string]interface{}{
			"booking_id": b.ID.String(),
			"type":       string(t),
		})
	}
}

func snapshotItems(lines []draft.CartLine) []BookingItem {
	items := make([]BookingItem, 0, len(lines))
	for i, line := range lines {
		price, ok := line.Price.Decimal()
		if !ok {
			price = decimal.Zero
		}
		items = append(items, BookingItem{
			Position:      i,
			CatalogItemID: line.ID,
			Name:          line.Name,
			Category:      line.Category,
			ImageURL:      line.Image,
			UnitPrice:     price,
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal(),
		})
	}
	return items
}

// generateBookingReference returns EVT-YYYYMMDD-XXXXXX with six random letters
func generateBookingReference(now time.Time) (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("EVT-%s-%s", now.Format("20060102"), string(randomPart)), nil
}

// generateTransactionID generates a mock transaction ID
func generateTransactionID(now time.Time) string {
	shortUUID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", now.Unix(), strings.ToUpper(shortUUID))
}
