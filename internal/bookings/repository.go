package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateWithPayment stores the booking, its items and its payment in one transaction
	CreateWithPayment(ctx context.Context, booking *Booking, payment *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, int64, error)
	ListAll(ctx context.Context, query ListQuery) ([]Booking, int64, error)

	// Cancel marks a confirmed booking cancelled and refunds its paid payments
	Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithPayment(ctx context.Context, booking *Booking, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		payment.BookingID = booking.ID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		booking.Payments = []Payment{*payment}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("customer_id = ?", customerID)
	return r.list(base, query)
}

func (r *repository) ListAll(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&Booking{}), query)
}

func (r *repository) list(base *gorm.DB, query ListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	query.Normalize()
	base = applyFilters(base, query)

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := r.withRelations(base).
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, totalCount, nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (*Booking, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !booking.Status.CanBeCancelled() {
			return ErrAlreadyCancelled
		}

		err = tx.Model(&Booking{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": cancelledAt,
				"updated_at":   cancelledAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		err = tx.Model(&Payment{}).
			Where("booking_id = ? AND status = ?", id, PaymentStatusPaid).
			Updates(map[string]interface{}{
				"status":      PaymentStatusRefunded,
				"refunded_at": cancelledAt,
				"updated_at":  cancelledAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to refund payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Items", itemsInCartOrder).
		Preload("Payments")
}

// itemsInCartOrder sorts booking items the way they sat in the cart
func itemsInCartOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// applyFilters applies query filters to the GORM query
func applyFilters(query *gorm.DB, filters ListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("booking_date >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// include the entire day
			query = query.Where("booking_date < ?", dateTo.AddDate(0, 0, 1))
		}
	}

	return query
}
