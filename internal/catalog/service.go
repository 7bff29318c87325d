package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventures/internal/shared/constants"
	"eventures/pkg/cache"
	"eventures/pkg/logger"
)

type Service interface {
	ListByKind(ctx context.Context, kind Kind, category string) (*KindListingResponse, error)
	Categories(ctx context.Context, kind Kind) ([]string, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	CreateItem(ctx context.Context, kind Kind, req CreateItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteCategory(ctx context.Context, kind Kind, category string) (int64, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	if cacheTTL <= 0 {
		cacheTTL = constants.TTL_SEMI_STATIC_SHORT
	}
	return &service{repo: repo, cache: cacheService, cacheTTL: cacheTTL}
}

func (s *service) ListByKind(ctx context.Context, kind Kind, category string) (*KindListingResponse, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	key := constants.CatalogListKey(kind.String(), category)
	var listing KindListingResponse
	hit, err := s.cache.GetOrSet(ctx, key, s.cacheTTL, &listing, func(ctx context.Context) (interface{}, error) {
		items, err := s.repo.List(ctx, kind, category)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s items: %w", kind, err)
		}
		grouped := GroupByCategory(kind, items)
		return grouped, nil
	})
	if err != nil {
		return nil, err
	}
	logger.GetDefault().LogCatalogCache(ctx, key, hit)
	return &listing, nil
}

func (s *service) Categories(ctx context.Context, kind Kind) ([]string, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	key := constants.CatalogCategoriesKey(kind.String())
	categories := []string{}
	hit, err := s.cache.GetOrSet(ctx, key, s.cacheTTL, &categories, func(ctx context.Context) (interface{}, error) {
		return s.repo.Categories(ctx, kind)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", kind, err)
	}
	logger.GetDefault().LogCatalogCache(ctx, key, hit)
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	key := constants.CatalogItemKey(id.String())
	var item Item
	hit, err := s.cache.GetOrSet(ctx, key, constants.TTL_DYNAMIC_SHORT, &item, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	logger.GetDefault().LogCatalogCache(ctx, key, hit)
	return &item, nil
}

func (s *service) CreateItem(ctx context.Context, kind Kind, req CreateItemRequest) (*Item, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	item := &Item{
		Kind:     kind,
		Category: strings.TrimSpace(req.Category),
		Name:     strings.TrimSpace(req.Name),
		Style:    strings.TrimSpace(req.Style),
		Price:    price,
		ImageURL: strings.TrimSpace(req.ImageURL),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Style != nil {
		item.Style = strings.TrimSpace(*req.Style)
	}
	if req.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		item.Price = price
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, kind Kind, category string) (int64, error) {
	if !kind.IsValid() {
		return 0, ErrInvalidKind
	}
	deleted, err := s.repo.DeleteByCategory(ctx, kind, category)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category %q: %w", category, err)
	}
	s.invalidate(ctx)
	return deleted, nil
}

// invalidate drops every cached catalog key; a failure only costs staleness
// until the TTL runs out.
func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.CACHE_PATTERN_CATALOG); err != nil {
		logger.GetDefault().WarnWithContext(ctx, "Failed to invalidate catalog cache", err, nil)
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}
