package lookups

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListEventTypes(ctx context.Context) ([]EventType, error)
	GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error)
	FindEventTypeByName(ctx context.Context, name string) (*EventType, error)
	CreateEventType(ctx context.Context, eventType *EventType) error
	DeleteEventType(ctx context.Context, id uuid.UUID) error

	ListLocationTypes(ctx context.Context) ([]LocationType, error)
	GetLocationType(ctx context.Context, id uuid.UUID) (*LocationType, error)
	FindLocationTypeByName(ctx context.Context, name string) (*LocationType, error)
	CreateLocationType(ctx context.Context, location *LocationType) error
	DeleteLocationType(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// EVENT TYPES

func (r *repository) ListEventTypes(ctx context.Context) ([]EventType, error) {
	var types []EventType
	if err := r.db.WithContext(ctx).Order("custom ASC, name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repository) GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error) {
	var eventType EventType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&eventType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &eventType, nil
}

func (r *repository) FindEventTypeByName(ctx context.Context, name string) (*EventType, error) {
	var eventType EventType
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&eventType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &eventType, nil
}

func (r *repository) CreateEventType(ctx context.Context, eventType *EventType) error {
	return r.db.WithContext(ctx).Create(eventType).Error
}

func (r *repository) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&EventType{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventTypeNotFound
	}
	return nil
}

// LOCATION TYPES

func (r *repository) ListLocationTypes(ctx context.Context) ([]LocationType, error) {
	var locations []LocationType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repository) GetLocationType(ctx context.Context, id uuid.UUID) (*LocationType, error) {
	var location LocationType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *repository) FindLocationTypeByName(ctx context.Context, name string) (*LocationType, error) {
	var location LocationType
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *repository) CreateLocationType(ctx context.Context, location *LocationType) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) DeleteLocationType(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LocationType{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}
