package bookings

// CheckoutRequest carries the payment details entered on the payment screen.
// Card details are informational; no charge is made.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=50"`
	CardHolder    string `json:"card_holder" binding:"omitempty,max=100"`
	CardLast4     string `json:"card_last4" binding:"omitempty,len=4,numeric"`
}

const (
	defaultPaymentMethod = "credit_card"
	defaultPageLimit     = 10
	maxPageLimit         = 100
)

// ListQuery filters and pages booking listings
type ListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// Normalize applies paging defaults
func (q *ListQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
