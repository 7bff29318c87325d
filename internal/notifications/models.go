package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

// BookingNotification is the message published whenever a booking changes
// state. Consumers use it to email the customer.
type BookingNotification struct {
	ID            uuid.UUID        `json:"id"`
	Type          NotificationType `json:"type"`
	BookingID     uuid.UUID        `json:"booking_id"`
	BookingRef    string           `json:"booking_ref"`
	CustomerID    uuid.UUID        `json:"customer_id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	EventType     string           `json:"event_type,omitempty"`
	EventDateTime string           `json:"event_date_time,omitempty"`
	Total         string           `json:"total"`
	Currency      string           `json:"currency"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewBookingNotification fills in the id and timestamp
func NewBookingNotification(t NotificationType, bookingID, customerID uuid.UUID, bookingRef string) *BookingNotification {
	return &BookingNotification{
		ID:         uuid.New(),
		Type:       t,
		BookingID:  bookingID,
		BookingRef: bookingRef,
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}
}

func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*BookingNotification, error) {
	var n BookingNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// PartitionKey keeps every message about one booking on the same partition
func (n *BookingNotification) PartitionKey() string {
	return n.BookingID.String()
}

// Subject is the email subject line for the notification
func (n *BookingNotification) Subject() string {
	switch n.Type {
	case NotificationTypeBookingConfirmed:
		return "Your booking " + n.BookingRef + " is confirmed"
	case NotificationTypeBookingCancelled:
		return "Your booking " + n.BookingRef + " has been cancelled"
	default:
		return "Update on booking " + n.BookingRef
	}
}
