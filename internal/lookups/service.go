package lookups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eventures/internal/shared/constants"
	"eventures/pkg/cache"
	"eventures/pkg/logger"
)

type Service interface {
	ListEventTypes(ctx context.Context) ([]EventType, error)
	GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error)
	// CreateEventType returns the existing type when one with the same name
	// (case-insensitive) is already stored.
	CreateEventType(ctx context.Context, name string, custom bool) (*EventType, error)
	DeleteEventType(ctx context.Context, id uuid.UUID) error

	ListLocationTypes(ctx context.Context) ([]LocationType, error)
	GetLocationType(ctx context.Context, id uuid.UUID) (*LocationType, error)
	CreateLocationType(ctx context.Context, name string) (*LocationType, error)
	DeleteLocationType(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	return &service{repo: repo, cache: cacheService}
}

func (s *service) ListEventTypes(ctx context.Context) ([]EventType, error) {
	types := []EventType{}
	_, err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_EVENT_TYPES, constants.TTL_STATIC_LONG, &types,
		func(ctx context.Context) (interface{}, error) {
			return s.repo.ListEventTypes(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list event types: %w", err)
	}
	if types == nil {
		types = []EventType{}
	}
	return types, nil
}

func (s *service) GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error) {
	return s.repo.GetEventType(ctx, id)
}

func (s *service) CreateEventType(ctx context.Context, name string, custom bool) (*EventType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	existing, err := s.repo.FindEventTypeByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrEventTypeNotFound) {
		return nil, err
	}

	eventType := &EventType{Name: name, Custom: custom}
	if err := s.repo.CreateEventType(ctx, eventType); err != nil {
		return nil, fmt.Errorf("failed to create event type: %w", err)
	}

	s.invalidate(ctx, constants.CACHE_KEY_EVENT_TYPES)
	return eventType, nil
}

func (s *service) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEventType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, constants.CACHE_KEY_EVENT_TYPES)
	return nil
}

func (s *service) ListLocationTypes(ctx context.Context) ([]LocationType, error) {
	locations := []LocationType{}
	_, err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_LOCATION_TYPES, constants.TTL_STATIC_LONG, &locations,
		func(ctx context.Context) (interface{}, error) {
			return s.repo.ListLocationTypes(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list location types: %w", err)
	}
	if locations == nil {
		locations = []LocationType{}
	}
	return locations, nil
}

func (s *service) GetLocationType(ctx context.Context, id uuid.UUID) (*LocationType, error) {
	return s.repo.GetLocationType(ctx, id)
}

func (s *service) CreateLocationType(ctx context.Context, name string) (*LocationType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	existing, err := s.repo.FindLocationTypeByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrLocationNotFound) {
		return nil, err
	}

	location := &LocationType{Name: name}
	if err := s.repo.CreateLocationType(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location type: %w", err)
	}

	s.invalidate(ctx, constants.CACHE_KEY_LOCATION_TYPES)
	return location, nil
}

func (s *service) DeleteLocationType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteLocationType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, constants.CACHE_KEY_LOCATION_TYPES)
	return nil
}

func (s *service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.GetDefault().WarnWithContext(ctx, "Failed to invalidate lookup cache", err, map[string]interface{}{
			"key": key,
		})
	}
}
