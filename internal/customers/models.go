package customers

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleCustomer), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// Customer is the person a booking is made for
type Customer struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"not null"`
	PhoneNumber string    `json:"phone_number" gorm:"not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Credential holds the login secret for a customer or an admin. Admin
// credentials have no customer.
type Credential struct {
	ID           uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"not null;default:'CUSTOMER'"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty" gorm:"type:uuid;index"`
	Customer     *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SubjectID is the id carried in tokens: the customer id when there is one,
// otherwise the credential id.
func (c *Credential) SubjectID() uuid.UUID {
	if c.CustomerID != nil {
		return *c.CustomerID
	}
	return c.ID
}
