package bookings

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventures/internal/customers"
	"eventures/internal/draft"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("booking belongs to another customer")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrDraftNotReady    = errors.New("visit every catalog and add at least one item before checking out")
	ErrMissingEventInfo = errors.New("missing booking details")
)

// Booking is a checked-out draft
type Booking struct {
	ID            uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingRef    string          `json:"booking_ref" gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID       `json:"customer_id" gorm:"type:uuid;index;not null"`
	EventTypeID   *uuid.UUID      `json:"event_type_id,omitempty" gorm:"type:uuid"`
	LocationID    *uuid.UUID      `json:"location_id,omitempty" gorm:"type:uuid"`
	EventType     string          `json:"event_type" gorm:"not null"`
	LocationName  string          `json:"location_name"`
	BookingDate   time.Time       `json:"booking_date" gorm:"not null;index"`
	LocationKind  string          `json:"location_kind" gorm:"type:varchar(20);not null"`
	Address       string          `json:"address,omitempty"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	GuestCount    int             `json:"guest_count" gorm:"not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Currency      string          `json:"currency" gorm:"type:varchar(3);not null"`
	Status        Status          `json:"status" gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED';index"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Customer *customers.Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT;"`
	Items    []BookingItem       `json:"items,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payments []Payment           `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// BookingItem is a snapshot of one cart line at checkout time
type BookingItem struct {
	ID            uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID     uuid.UUID       `json:"booking_id" gorm:"type:uuid;index;not null"`
	Position      int             `json:"position" gorm:"not null;default:0"`
	CatalogItemID string          `json:"catalog_item_id" gorm:"not null"`
	Name          string          `json:"name" gorm:"not null"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	LineTotal     decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Payment records the amount charged for a booking
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID     uuid.UUID       `json:"booking_id" gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency      string          `json:"currency" gorm:"type:varchar(3);not null"`
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(20);check:status IN ('PAID', 'REFUNDED');not null"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(50)"`
	TransactionID string          `json:"transaction_id" gorm:"uniqueIndex;not null"`
	CardHolder    string          `json:"card_holder,omitempty"`
	CardLast4     string          `json:"card_last4,omitempty" gorm:"type:varchar(4)"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	RefundedAt    *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (BookingItem) TableName() string {
	return "booking_items"
}

func (Payment) TableName() string {
	return "payments"
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Location rebuilds the event location stored on the booking
func (b *Booking) Location() draft.Location {
	if draft.LocationKind(b.LocationKind) == draft.LocationGeoPoint && b.Latitude != nil && b.Longitude != nil {
		return draft.GeoPointLocation(*b.Latitude, *b.Longitude)
	}
	return draft.AddressLocation(b.Address)
}

func (b *Booking) setLocation(loc draft.Location) {
	b.LocationKind = string(loc.Kind)
	switch loc.Kind {
	case draft.LocationAddress:
		b.Address = loc.Address
	case draft.LocationGeoPoint:
		lat, lon := loc.Point.Latitude, loc.Point.Longitude
		b.Latitude = &lat
		b.Longitude = &lon
	}
}

// LatestPayment returns the most recently created payment, if any
func (b *Booking) LatestPayment() *Payment {
	var latest *Payment
	for i := range b.Payments {
		if latest == nil || b.Payments[i].CreatedAt.After(latest.CreatedAt) {
			latest = &b.Payments[i]
		}
	}
	return latest
}

func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
