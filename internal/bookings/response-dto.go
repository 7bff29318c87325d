package bookings

import (
	"time"

	"eventures/internal/draft"
)

type CheckoutResponse struct {
	BookingID  string         `json:"booking_id"`
	BookingRef string         `json:"booking_ref"`
	Status     Status         `json:"status"`
	TotalPaid  string         `json:"total_paid"`
	Currency   string         `json:"currency"`
	ItemCount  int            `json:"item_count"`
	Items      []ItemResponse `json:"items"`
	Payment    *PaymentInfo   `json:"payment,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ItemResponse struct {
	CatalogItemID string `json:"catalog_item_id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Image         string `json:"image,omitempty"`
	UnitPrice     string `json:"unit_price"`
	Quantity      int    `json:"quantity"`
	LineTotal     string `json:"line_total"`
}

type PaymentInfo struct {
	ID            string     `json:"id"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	CardLast4     string     `json:"card_last4,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
}

type CustomerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type BookingResponse struct {
	ID            string         `json:"id"`
	BookingRef    string         `json:"booking_ref"`
	Status        Status         `json:"status"`
	EventType     string         `json:"event_type"`
	EventDateTime time.Time      `json:"event_date_time"`
	Location      draft.Location `json:"event_location"`
	LocationName  string         `json:"location_name,omitempty"`
	GuestCount    int            `json:"guest_count"`
	Total         string         `json:"total"`
	Currency      string         `json:"currency"`
	Items         []ItemResponse `json:"items"`
	Payment       *PaymentInfo   `json:"payment,omitempty"`
	Customer      *CustomerInfo  `json:"customer,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
}

func (p *Payment) ToPaymentInfo() *PaymentInfo {
	return &PaymentInfo{
		ID:            p.ID.String(),
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		Status:        p.Status.String(),
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		CardLast4:     p.CardLast4,
		PaidAt:        p.PaidAt,
		RefundedAt:    p.RefundedAt,
	}
}

func toItemResponses(items []BookingItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemResponse{
			CatalogItemID: item.CatalogItemID,
			Name:          item.Name,
			Category:      item.Category,
			Image:         item.ImageURL,
			UnitPrice:     item.UnitPrice.StringFixed(2),
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal.StringFixed(2),
		})
	}
	return out
}

func ToCheckoutResponse(b *Booking) *CheckoutResponse {
	resp := &CheckoutResponse{
		BookingID:  b.ID.String(),
		BookingRef: b.BookingRef,
		Status:     b.Status,
		TotalPaid:  b.TotalAmount.StringFixed(2),
		Currency:   b.Currency,
		Items:      toItemResponses(b.Items),
		CreatedAt:  b.CreatedAt,
	}
	for _, item := range b.Items {
		resp.ItemCount += item.Quantity
	}
	if p := b.LatestPayment(); p != nil {
		resp.Payment = p.ToPaymentInfo()
	}
	return resp
}

func ToBookingResponse(b *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID.String(),
		BookingRef:    b.BookingRef,
		Status:        b.Status,
		EventType:     b.EventType,
		EventDateTime: b.BookingDate,
		Location:      b.Location(),
		LocationName:  b.LocationName,
		GuestCount:    b.GuestCount,
		Total:         b.TotalAmount.StringFixed(2),
		Currency:      b.Currency,
		Items:         toItemResponses(b.Items),
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
	}
	if p := b.LatestPayment(); p != nil {
		resp.Payment = p.ToPaymentInfo()
	}
	if b.Customer != nil {
		resp.Customer = &CustomerInfo{
			ID:          b.Customer.ID.String(),
			Name:        b.Customer.Name,
			Email:       b.Customer.Email,
			PhoneNumber: b.Customer.PhoneNumber,
		}
	}
	return resp
}

func ToBookingResponses(bookings []Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}
