package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"eventures/internal/catalog"
)

// Item is a catalog entry as stored in Strapi
type Item struct {
	ExternalID string
	Kind       catalog.Kind
	Category   string
	Name       string
	Style      string
	Price      decimal.Decimal
	ImageURL   string
}

// entry is one Strapi record with v4 "attributes" flattened into the top level
type entry map[string]json.RawMessage

func parseEntry(raw json.RawMessage) (entry, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	if attrs, ok := e["attributes"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(attrs, &nested); err == nil {
			for k, v := range nested {
				if _, exists := e[k]; !exists {
					e[k] = v
				}
			}
		}
		delete(e, "attributes")
	}
	return e, nil
}

// id returns the record id; v5 documentId is preferred over the numeric id
func (e entry) id() string {
	if s := e.text("documentId"); s != "" {
		return s
	}
	raw, ok := e["id"]
	if !ok {
		return ""
	}
	return strings.Trim(string(raw), `"`)
}

func (e entry) text(field string) string {
	raw, ok := e[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

var priceFields = []string{"PricePerItem", "PricePerUnit"}

func (e entry) price() (decimal.Decimal, error) {
	for _, field := range priceFields {
		raw, ok := e[field]
		if !ok || string(raw) == "null" {
			continue
		}
		var d decimal.Decimal
		if err := json.Unmarshal(raw, &d); err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", field, err)
		}
		return d, nil
	}
	return decimal.Zero, errors.New("no price field")
}

type media struct {
	URL        string `json:"url"`
	Attributes struct {
		URL string `json:"url"`
	} `json:"attributes"`
}

func (m media) url() string {
	if m.URL != "" {
		return m.URL
	}
	return m.Attributes.URL
}

// mediaURL finds the first media url in any of the shapes Strapi uses:
// a list, a single object, or either wrapped in {"data": ...}
func mediaURL(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		return mediaURL(wrapped.Data)
	}

	var list []media
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, m := range list {
			if u := m.url(); u != "" {
				return u
			}
		}
		return ""
	}

	var single media
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.url()
	}
	return ""
}

func (c *Client) decodeItem(kind catalog.Kind, imageField string, e entry) (Item, error) {
	name := strings.TrimSpace(e.text("Name"))
	if name == "" {
		return Item{}, errors.New("missing Name")
	}

	price, err := e.price()
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ExternalID: e.id(),
		Kind:       kind,
		Category:   strings.TrimSpace(e.text("Category")),
		Name:       name,
		Style:      strings.TrimSpace(e.text("Style")),
		Price:      price,
	}
	if u := mediaURL(e[imageField]); u != "" {
		item.ImageURL = c.absoluteURL(u)
	}
	return item, nil
}

func (c *Client) absoluteURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return c.baseURL + "/" + strings.TrimLeft(u, "/")
}

// ToCatalogItem converts the entry into a catalog row ready to insert
func (i Item) ToCatalogItem() catalog.Item {
	category := i.Category
	if category == "" {
		category = "Uncategorized"
	}
	return catalog.Item{
		Kind:     i.Kind,
		Category: category,
		Name:     i.Name,
		Style:    i.Style,
		Price:    i.Price,
		ImageURL: i.ImageURL,
	}
}
