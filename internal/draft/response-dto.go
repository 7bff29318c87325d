package draft

// Summary holds the values derived from a draft
type Summary struct {
	Total          string `json:"total"`
	Currency       string `json:"currency"`
	ItemCount      int    `json:"item_count"`
	LineCount      int    `json:"line_count"`
	AllVisited     bool   `json:"all_visited"`
	CanProceed     bool   `json:"can_proceed"`
	LegacyComplete bool   `json:"legacy_complete"`
	HasEventInfo   bool   `json:"has_event_info"`
}

type DraftResponse struct {
	Draft   *Draft  `json:"draft"`
	Summary Summary `json:"summary"`
}

func Summarize(d *Draft, currency string) Summary {
	return Summary{
		Total:          d.GrandTotal().StringFixed(2),
		Currency:       currency,
		ItemCount:      d.ItemCount(),
		LineCount:      len(d.CartItems),
		AllVisited:     d.AllCategoriesVisited(),
		CanProceed:     d.CanProceed(),
		LegacyComplete: d.IsBookingComplete(),
		HasEventInfo:   d.HasEventInfo(),
	}
}

func NewDraftResponse(d *Draft, currency string) DraftResponse {
	return DraftResponse{Draft: d, Summary: Summarize(d, currency)}
}
