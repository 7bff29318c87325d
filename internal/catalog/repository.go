package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	CreateBatch(ctx context.Context, items []Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, kind Kind, category string) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Categories returns the distinct categories of a kind in first-seen order
	Categories(ctx context.Context, kind Kind) ([]string, error)
	DeleteByCategory(ctx context.Context, kind Kind, category string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) CreateBatch(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, kind Kind, category string) ([]Item, error) {
	var items []Item
	query := r.db.WithContext(ctx).Where("kind = ?", kind)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	result := r.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"category":  item.Category,
			"name":      item.Name,
			"style":     item.Style,
			"price":     item.Price,
			"image_url": item.ImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Categories(ctx context.Context, kind Kind) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&Item{}).
		Where("kind = ?", kind).
		Group("category").
		Order("MIN(created_at) ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) DeleteByCategory(ctx context.Context, kind Kind, category string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("kind = ? AND category = ?", kind, category).
		Delete(&Item{})
	return result.RowsAffected, result.Error
}
