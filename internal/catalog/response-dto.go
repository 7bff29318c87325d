package catalog

import "time"

type ItemResponse struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Style     string    `json:"style,omitempty"`
	Price     string    `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryGroup is one tab of a catalog screen
type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []ItemResponse `json:"items"`
}

type KindListingResponse struct {
	Kind       Kind            `json:"kind"`
	Categories []CategoryGroup `json:"categories"`
	TotalItems int             `json:"total_items"`
}

type DeleteCategoryResponse struct {
	Kind     Kind   `json:"kind"`
	Category string `json:"category"`
	Deleted  int64  `json:"deleted"`
}

func ToItemResponse(item *Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID.String(),
		Kind:      item.Kind,
		Category:  item.Category,
		Name:      item.Name,
		Style:     item.Style,
		Price:     item.Price.StringFixed(2),
		Image:     item.Image(),
		CreatedAt: item.CreatedAt,
	}
}

// GroupByCategory groups items by category, keeping categories in the order
// they first appear.
func GroupByCategory(kind Kind, items []Item) KindListingResponse {
	listing := KindListingResponse{Kind: kind, Categories: []CategoryGroup{}, TotalItems: len(items)}
	index := make(map[string]int)
	for i := range items {
		pos, ok := index[items[i].Category]
		if !ok {
			pos = len(listing.Categories)
			index[items[i].Category] = pos
			listing.Categories = append(listing.Categories, CategoryGroup{Category: items[i].Category})
		}
		listing.Categories[pos].Items = append(listing.Categories[pos].Items, ToItemResponse(&items[i]))
	}
	return listing
}
