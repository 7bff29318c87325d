package lookups

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrLocationNotFound  = errors.New("location type not found")
	ErrNameRequired      = errors.New("name is required")
)

// EventType is the kind of occasion being booked. Custom types are the ones
// customers typed in themselves through the "Other" option.
type EventType struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Custom    bool      `json:"custom" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationType is a kind of venue (garden, hall, beach ...)
type LocationType struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
