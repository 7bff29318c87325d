package draft

// UpdateEventInfoRequest is the event-info step. Absent fields are left as
// they are.
type UpdateEventInfoRequest struct {
	EventTypeID     *string   `json:"event_type_id" validate:"omitempty,uuid"`
	CustomEventType *string   `json:"custom_event_type" validate:"omitempty,min=2,max=100"`
	EventDateTime   *string   `json:"event_date_time"`
	EventLocation   *Location `json:"event_location"`
	LocationID      *string   `json:"location_id" validate:"omitempty,uuid"`
	GuestCount      *int      `json:"guest_count" validate:"omitempty,min=1,max=100000"`

	// legacy single-choice markers
	Furniture  *string `json:"furniture" validate:"omitempty,max=255"`
	Utensils   *string `json:"utensils" validate:"omitempty,max=255"`
	Decoration *string `json:"decoration" validate:"omitempty,max=255"`
}

type AddToCartRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity" validate:"min=0,max=10000"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=10000"`
}
