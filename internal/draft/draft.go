package draft

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventures/internal/catalog"
)

// CartLine is one catalog item in the cart together with its quantity.
// ID is unique within a cart.
type CartLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
}

// LineTotal is price times quantity; an unparseable price contributes zero
func (l CartLine) LineTotal() decimal.Decimal {
	price, ok := l.Price.Decimal()
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CatalogItem is the catalog-side view of a product being added to the cart
type CatalogItem struct {
	ID       string
	Name     string
	Price    Price
	Image    string
	Category string
}

// Draft is the in-progress booking a customer assembles before checkout
type Draft struct {
	EventType     string     `json:"event_type,omitempty"`
	EventTypeID   *uuid.UUID `json:"event_type_id,omitempty"`
	EventDateTime string     `json:"event_date_time,omitempty"`
	EventLocation *Location  `json:"event_location,omitempty"`
	LocationName  string     `json:"location_name,omitempty"`
	LocationID    *uuid.UUID `json:"location_id,omitempty"`
	GuestCount    *int       `json:"guest_count,omitempty"`

	// legacy per-category selections, only read by IsBookingComplete
	Furniture  *string `json:"furniture,omitempty"`
	Utensils   *string `json:"utensils,omitempty"`
	Decoration *string `json:"decoration,omitempty"`

	VisitedDecoration bool `json:"visited_decoration"`
	VisitedUtensils   bool `json:"visited_utensils"`
	VisitedFurniture  bool `json:"visited_furniture"`

	CartItems []CartLine `json:"cart_items"`

	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`

	// set while a checkout holds the draft, see Claim
	CheckoutStartedAt *time.Time `json:"checkout_started_at,omitempty"`
}

// New returns an empty draft
func New() *Draft {
	return &Draft{CartItems: []CartLine{}}
}

// Patch is a partial update; nil fields are left untouched. The visited
// flags are sticky: true sets them, false is ignored, and only Reset clears them.
type Patch struct {
	EventType     *string
	EventTypeID   *uuid.UUID
	EventDateTime *string
	EventLocation *Location
	LocationName  *string
	LocationID    *uuid.UUID
	GuestCount    *int

	Furniture  *string
	Utensils   *string
	Decoration *string

	VisitedDecoration *bool
	VisitedUtensils   *bool
	VisitedFurniture  *bool

	CustomerID *uuid.UUID
	BookingID  *uuid.UUID
}

// Update merges p into the draft. Visited flags only ever move from false to
// true; a patch carrying false for a flag is ignored.
func (d *Draft) Update(p Patch) {
	if p.EventType != nil {
		d.EventType = *p.EventType
	}
	if p.EventTypeID != nil {
		d.EventTypeID = cloneUUID(p.EventTypeID)
	}
	if p.EventDateTime != nil {
		d.EventDateTime = *p.EventDateTime
	}
	if p.EventLocation != nil {
		loc := *p.EventLocation
		d.EventLocation = &loc
	}
	if p.LocationName != nil {
		d.LocationName = *p.LocationName
	}
	if p.LocationID != nil {
		d.LocationID = cloneUUID(p.LocationID)
	}
	if p.GuestCount != nil {
		n := *p.GuestCount
		d.GuestCount = &n
	}
	if p.Furniture != nil {
		d.Furniture = cloneString(p.Furniture)
	}
	if p.Utensils != nil {
		d.Utensils = cloneString(p.Utensils)
	}
	if p.Decoration != nil {
		d.Decoration = cloneString(p.Decoration)
	}
	if p.VisitedDecoration != nil && *p.VisitedDecoration {
		d.VisitedDecoration = true
	}
	if p.VisitedUtensils != nil && *p.VisitedUtensils {
		d.VisitedUtensils = true
	}
	if p.VisitedFurniture != nil && *p.VisitedFurniture {
		d.VisitedFurniture = true
	}
	if p.CustomerID != nil {
		d.CustomerID = cloneUUID(p.CustomerID)
	}
	if p.BookingID != nil {
		d.BookingID = cloneUUID(p.BookingID)
	}
}

// MarkVisited records that the customer opened the screen for kind
func (d *Draft) MarkVisited(kind catalog.Kind) {
	switch kind {
	case catalog.KindDecoration:
		d.VisitedDecoration = true
	case catalog.KindUtensil:
		d.VisitedUtensils = true
	case catalog.KindFurniture:
		d.VisitedFurniture = true
	}
}

// AddToCart adds quantity units of item. An item already in the cart has its
// quantity increased instead of getting a second line. A non-positive
// quantity counts as one.
func (d *Draft) AddToCart(item CatalogItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range d.CartItems {
		if d.CartItems[i].ID == item.ID {
			d.CartItems[i].Quantity += quantity
			return
		}
	}
	d.CartItems = append(d.CartItems, CartLine{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Category: item.Category,
		Quantity: quantity,
	})
}

// RemoveFromCart drops the line with the given id; unknown ids are a no-op
func (d *Draft) RemoveFromCart(itemID string) {
	kept := d.CartItems[:0]
	for _, line := range d.CartItems {
		if line.ID != itemID {
			kept = append(kept, line)
		}
	}
	d.CartItems = kept
}

// UpdateCartQuantity sets the quantity of a line. A non-positive quantity
// removes the line. Unknown ids are a no-op.
func (d *Draft) UpdateCartQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		d.RemoveFromCart(itemID)
		return
	}
	for i := range d.CartItems {
		if d.CartItems[i].ID == itemID {
			d.CartItems[i].Quantity = quantity
			return
		}
	}
}

// Line returns the cart line with the given id
func (d *Draft) Line(itemID string) (CartLine, bool) {
	for _, line := range d.CartItems {
		if line.ID == itemID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Claim reserves the draft for the checkout that will create bookingID. It
// fails while another checkout holds a claim younger than staleAfter.
func (d *Draft) Claim(bookingID uuid.UUID, now time.Time, staleAfter time.Duration) bool {
	if d.CheckoutStartedAt != nil && now.Sub(*d.CheckoutStartedAt) < staleAfter {
		return false
	}
	started := now
	d.BookingID = cloneUUID(&bookingID)
	d.CheckoutStartedAt = &started
	return true
}

// Release drops the claim if bookingID still holds it
func (d *Draft) Release(bookingID uuid.UUID) {
	if d.BookingID == nil || *d.BookingID != bookingID {
		return
	}
	d.BookingID = nil
	d.CheckoutStartedAt = nil
}

// Reset returns the draft to its initial empty state
func (d *Draft) Reset() {
	*d = *New()
}

// IsBookingComplete is the legacy completeness check: all three per-category
// selection markers are set. Event details are checked by HasEventInfo.
func (d *Draft) IsBookingComplete() bool {
	return d.Furniture != nil && d.Utensils != nil && d.Decoration != nil
}

func (d *Draft) AllCategoriesVisited() bool {
	return d.VisitedDecoration && d.VisitedUtensils && d.VisitedFurniture
}

// CanProceed reports whether the draft may be checked out: every category
// screen was opened and the cart is not empty.
func (d *Draft) CanProceed() bool {
	return d.AllCategoriesVisited() && len(d.CartItems) > 0
}

// HasEventInfo reports whether the event details needed for checkout are set
func (d *Draft) HasEventInfo() bool {
	return d.EventType != "" && d.EventDateTime != "" && d.EventLocation != nil && d.GuestCount != nil
}

func (d *Draft) ItemCount() int {
	n := 0
	for _, line := range d.CartItems {
		n += line.Quantity
	}
	return n
}

// GrandTotal sums price times quantity over the cart. Lines whose price does
// not parse contribute zero.
func (d *Draft) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.CartItems {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Clone returns a deep copy
func (d *Draft) Clone() *Draft {
	c := *d
	c.EventTypeID = cloneUUID(d.EventTypeID)
	c.LocationID = cloneUUID(d.LocationID)
	c.CustomerID = cloneUUID(d.CustomerID)
	c.BookingID = cloneUUID(d.BookingID)
	if d.CheckoutStartedAt != nil {
		started := *d.CheckoutStartedAt
		c.CheckoutStartedAt = &started
	}
	c.Furniture = cloneString(d.Furniture)
	c.Utensils = cloneString(d.Utensils)
	c.Decoration = cloneString(d.Decoration)
	if d.EventLocation != nil {
		loc := *d.EventLocation
		c.EventLocation = &loc
	}
	if d.GuestCount != nil {
		n := *d.GuestCount
		c.GuestCount = &n
	}
	c.CartItems = make([]CartLine, len(d.CartItems))
	copy(c.CartItems, d.CartItems)
	return &c
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
