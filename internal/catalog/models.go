package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("catalog item not found")
	ErrInvalidKind  = errors.New("invalid catalog kind")
	ErrInvalidPrice = errors.New("price must be a non-negative number")
)

// PlaceholderImageURL is served for items without an uploaded image
const PlaceholderImageURL = "https://via.placeholder.com/150"

// Item is a product a customer can add to a booking
type Item struct {
	ID        uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Kind      Kind            `json:"kind" gorm:"type:varchar(20);not null;index:idx_catalog_kind_category"`
	Category  string          `json:"category" gorm:"not null;index:idx_catalog_kind_category"`
	Name      string          `json:"name" gorm:"not null"`
	Style     string          `json:"style"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Item) TableName() string {
	return "catalog_items"
}

// Image returns the item image or the placeholder when none is set
func (i *Item) Image() string {
	if i.ImageURL == "" {
		return PlaceholderImageURL
	}
	return i.ImageURL
}
