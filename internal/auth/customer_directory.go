package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"eventures/internal/customers"
)

// CustomerDirectory exposes customer contact details to other features
// without handing them the credential repository.
type CustomerDirectory struct {
	repo customers.Repository
}

func NewCustomerDirectory(repo customers.Repository) *CustomerDirectory {
	return &CustomerDirectory{repo: repo}
}

// GetContact returns the email and name of a customer
func (d *CustomerDirectory) GetContact(ctx context.Context, customerID uuid.UUID) (email, name string, err error) {
	customer, err := d.repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch customer %s: %w", customerID, err)
	}
	return customer.Email, customer.Name, nil
}
