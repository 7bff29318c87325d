package constants

import (
	"fmt"
	"time"
)

// Redis key layout
// Pattern: eventures:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG       = 24 * time.Hour   // lookups rarely change
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // catalog listings
	TTL_DYNAMIC_SHORT     = 5 * time.Minute  // single catalog items
	TTL_RATE_LIMIT_WINDOW = 60 * time.Second // default sliding window
)

// ================== KEY PREFIX ==================

const (
	CACHE_PREFIX = "eventures"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_CATALOG_LIST       = CACHE_PREFIX + ":catalog:list:"       // + kind
	CACHE_KEY_CATALOG_CATEGORIES = CACHE_PREFIX + ":catalog:categories:" // + kind
	CACHE_KEY_CATALOG_ITEM       = CACHE_PREFIX + ":catalog:item:uuid:"  // + item-id
	CACHE_PATTERN_CATALOG        = CACHE_PREFIX + ":catalog:*"
)

// ================== LOOKUPS MODULE ==================

const (
	CACHE_KEY_EVENT_TYPES    = CACHE_PREFIX + ":lookups:event_types:all"
	CACHE_KEY_LOCATION_TYPES = CACHE_PREFIX + ":lookups:locations:all"
)

// ================== DRAFTS MODULE ==================

const (
	KEY_DRAFT_PREFIX = CACHE_PREFIX + ":drafts:customer:" // + customer-id
)

// ================== RATE LIMIT ==================

const (
	KEY_RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:"
)

// CatalogListKey returns the listing key for a catalog kind, optionally narrowed to a category
func CatalogListKey(kind, category string) string {
	if category == "" {
		return CACHE_KEY_CATALOG_LIST + kind
	}
	return fmt.Sprintf("%s%s:category:%s", CACHE_KEY_CATALOG_LIST, kind, category)
}

// CatalogCategoriesKey returns the category-list key for a catalog kind
func CatalogCategoriesKey(kind string) string {
	return CACHE_KEY_CATALOG_CATEGORIES + kind
}

// CatalogItemKey returns the key of a single catalog item
func CatalogItemKey(id string) string {
	return CACHE_KEY_CATALOG_ITEM + id
}

// DraftKey returns the key holding a customer's booking draft
func DraftKey(customerID string) string {
	return KEY_DRAFT_PREFIX + customerID
}

// RateLimitKey returns the sliding-window key for a client and route class
func RateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s%s:%s", KEY_RATE_LIMIT_PREFIX, clientIP, limitType)
}
