package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"eventures/internal/catalog"
	"eventures/internal/lookups"
	"eventures/pkg/logger"
)

var (
	ErrInvalidEventInfo = errors.New("invalid event info")
	ErrEventInPast      = errors.New("event date must be in the future")
	ErrUnknownEventType = errors.New("event type does not exist")
	ErrUnknownLocation  = errors.New("location does not exist")
	ErrItemNotFound     = errors.New("catalog item not found")
	ErrKindMismatch     = errors.New("item does not belong to the requested catalog")
	ErrLineNotFound     = errors.New("item is not in the cart")
	ErrInvalidRequest   = errors.New("invalid request")

	ErrCheckoutInProgress = errors.New("a checkout is already in progress for this draft")
)

// claims older than this are treated as abandoned
const checkoutClaimTTL = 2 * time.Minute

// CatalogLookup resolves cart items server-side so clients cannot set prices
type CatalogLookup interface {
	GetItem(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
}

// LookupResolver resolves event-type and location ids to labels
type LookupResolver interface {
	GetEventType(ctx context.Context, id uuid.UUID) (*lookups.EventType, error)
	CreateEventType(ctx context.Context, name string, custom bool) (*lookups.EventType, error)
	GetLocationType(ctx context.Context, id uuid.UUID) (*lookups.LocationType, error)
}

type Service interface {
	Get(ctx context.Context, customerID uuid.UUID) (*Draft, error)
	UpdateEventInfo(ctx context.Context, customerID uuid.UUID, req UpdateEventInfoRequest) (*Draft, error)
	MarkVisited(ctx context.Context, customerID uuid.UUID, kind catalog.Kind) (*Draft, error)
	AddToCart(ctx context.Context, customerID uuid.UUID, req AddToCartRequest) (*Draft, error)
	UpdateCartQuantity(ctx context.Context, customerID uuid.UUID, itemID string, quantity int) (*Draft, error)
	RemoveFromCart(ctx context.Context, customerID uuid.UUID, itemID string) (*Draft, error)
	Reset(ctx context.Context, customerID uuid.UUID, reason string) error
	Claim(ctx context.Context, customerID, bookingID uuid.UUID) (*Draft, error)
	Release(ctx context.Context, customerID, bookingID uuid.UUID) error
}

type service struct {
	store     Store
	catalog   CatalogLookup
	lookups   LookupResolver
	validator *validator.Validate
	now       func() time.Time
}

func NewService(store Store, catalogLookup CatalogLookup, resolver LookupResolver) Service {
	return &service{
		store:     store,
		catalog:   catalogLookup,
		lookups:   resolver,
		validator: validator.New(),
		now:       time.Now,
	}
}

func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*Draft, error) {
	d, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	d.Update(Patch{CustomerID: &customerID})
	return d, nil
}

func (s *service) UpdateEventInfo(ctx context.Context, customerID uuid.UUID, req UpdateEventInfoRequest) (*Draft, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEventInfo, err)
	}

	patch := Patch{
		GuestCount: req.GuestCount,
		Furniture:  req.Furniture,
		Utensils:   req.Utensils,
		Decoration: req.Decoration,
	}

	if req.EventDateTime != nil {
		when, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.EventDateTime))
		if err != nil {
			return nil, fmt.Errorf("%w: event_date_time must be RFC3339", ErrInvalidEventInfo)
		}
		if !when.After(s.now()) {
			return nil, ErrEventInPast
		}
		formatted := when.UTC().Format(time.RFC3339)
		patch.EventDateTime = &formatted
	}

	if req.EventLocation != nil {
		if err := req.EventLocation.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventInfo, err)
		}
		patch.EventLocation = req.EventLocation
	}

	if err := s.resolveEventType(ctx, req, &patch); err != nil {
		return nil, err
	}
	if err := s.resolveLocation(ctx, req, &patch); err != nil {
		return nil, err
	}

	return s.update(ctx, customerID, func(d *Draft) error {
		d.Update(patch)
		return nil
	})
}

// resolveEventType fills the event type label. A custom label wins over an id
// and creates the type when it does not exist yet.
func (s *service) resolveEventType(ctx context.Context, req UpdateEventInfoRequest, patch *Patch) error {
	if req.CustomEventType != nil && strings.TrimSpace(*req.CustomEventType) != "" {
		eventType, err := s.lookups.CreateEventType(ctx, *req.CustomEventType, true)
		if err != nil {
			return fmt.Errorf("failed to create custom event type: %w", err)
		}
		patch.EventType = &eventType.Name
		patch.EventTypeID = &eventType.ID
		return nil
	}

	if req.EventTypeID == nil {
		return nil
	}
	id, err := uuid.Parse(*req.EventTypeID)
	if err != nil {
		return fmt.Errorf("%w: event_type_id", ErrInvalidEventInfo)
	}
	eventType, err := s.lookups.GetEventType(ctx, id)
	if err != nil {
		if errors.Is(err, lookups.ErrEventTypeNotFound) {
			return ErrUnknownEventType
		}
		return err
	}
	patch.EventType = &eventType.Name
	patch.EventTypeID = &eventType.ID
	return nil
}

func (s *service) resolveLocation(ctx context.Context, req UpdateEventInfoRequest, patch *Patch) error {
	if req.LocationID == nil {
		return nil
	}
	id, err := uuid.Parse(*req.LocationID)
	if err != nil {
		return fmt.Errorf("%w: location_id", ErrInvalidEventInfo)
	}
	location, err := s.lookups.GetLocationType(ctx, id)
	if err != nil {
		if errors.Is(err, lookups.ErrLocationNotFound) {
			return ErrUnknownLocation
		}
		return err
	}
	patch.LocationName = &location.Name
	patch.LocationID = &location.ID
	return nil
}

func (s *service) MarkVisited(ctx context.Context, customerID uuid.UUID, kind catalog.Kind) (*Draft, error) {
	return s.update(ctx, customerID, func(d *Draft) error {
		d.MarkVisited(kind)
		return nil
	})
}

func (s *service) AddToCart(ctx context.Context, customerID uuid.UUID, req AddToCartRequest) (*Draft, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	item, err := s.catalog.GetItem(ctx, uuid.MustParse(req.ItemID))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if req.Kind != "" {
		kind, err := catalog.ParseKind(req.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if kind != item.Kind {
			return nil, ErrKindMismatch
		}
	}

	line := CatalogItem{
		ID:       item.ID.String(),
		Name:     item.Name,
		Price:    PriceFromDecimal(item.Price),
		Image:    item.Image(),
		Category: item.Category,
	}

	return s.update(ctx, customerID, func(d *Draft) error {
		d.AddToCart(line, req.Quantity)
		return nil
	})
}

func (s *service) UpdateCartQuantity(ctx context.Context, customerID uuid.UUID, itemID string, quantity int) (*Draft, error) {
	return s.update(ctx, customerID, func(d *Draft) error {
		if _, ok := d.Line(itemID); !ok {
			return ErrLineNotFound
		}
		d.UpdateCartQuantity(itemID, quantity)
		return nil
	})
}

func (s *service) RemoveFromCart(ctx context.Context, customerID uuid.UUID, itemID string) (*Draft, error) {
	return s.update(ctx, customerID, func(d *Draft) error {
		d.RemoveFromCart(itemID)
		return nil
	})
}

func (s *service) Reset(ctx context.Context, customerID uuid.UUID, reason string) error {
	if err := s.store.Delete(ctx, customerID); err != nil {
		return err
	}
	logger.GetDefault().LogDraftReset(ctx, customerID.String(), reason)
	return nil
}

// Claim reserves the draft for one checkout and returns the claimed copy.
// A second Claim before Release or Reset fails with ErrCheckoutInProgress.
func (s *service) Claim(ctx context.Context, customerID, bookingID uuid.UUID) (*Draft, error) {
	return s.update(ctx, customerID, func(d *Draft) error {
		if !d.Claim(bookingID, s.now(), checkoutClaimTTL) {
			return ErrCheckoutInProgress
		}
		return nil
	})
}

func (s *service) Release(ctx context.Context, customerID, bookingID uuid.UUID) error {
	_, err := s.update(ctx, customerID, func(d *Draft) error {
		d.Release(bookingID)
		return nil
	})
	return err
}

func (s *service) update(ctx context.Context, customerID uuid.UUID, fn func(*Draft) error) (*Draft, error) {
	return s.store.Update(ctx, customerID, func(d *Draft) error {
		d.Update(Patch{CustomerID: &customerID})
		return fn(d)
	})
}
