package database

import (
	"gorm.io/gorm"

	"eventures/internal/bookings"
	"eventures/internal/catalog"
	"eventures/internal/customers"
	"eventures/internal/lookups"
)

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&customers.Customer{},
		&customers.Credential{},
		&catalog.Item{},
		&lookups.EventType{},
		&lookups.LocationType{},
		&bookings.Booking{},
		&bookings.BookingItem{},
		&bookings.Payment{},
	)
}
