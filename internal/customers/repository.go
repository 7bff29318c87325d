package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("customer not found")
	ErrAlreadyExists = errors.New("email already registered")
)

type Repository interface {
	// CreateWithCredential stores a customer and its credential in one transaction
	CreateWithCredential(ctx context.Context, customer *Customer, credential *Credential) error
	CreateCredential(ctx context.Context, credential *Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*Credential, error)
	GetCredentialBySubject(ctx context.Context, subjectID uuid.UUID) (*Credential, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	UpdatePassword(ctx context.Context, credentialID uuid.UUID, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *repository) CreateWithCredential(ctx context.Context, customer *Customer, credential *Credential) error {
	customer.Email = normalizeEmail(customer.Email)
	credential.Email = normalizeEmail(credential.Email)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return translateError(err)
		}
		credential.CustomerID = &customer.ID
		if err := tx.Create(credential).Error; err != nil {
			return translateError(err)
		}
		return nil
	})
}

func (r *repository) CreateCredential(ctx context.Context, credential *Credential) error {
	credential.Email = normalizeEmail(credential.Email)
	return translateError(r.db.WithContext(ctx).Create(credential).Error)
}

func (r *repository) GetCredentialByEmail(ctx context.Context, email string) (*Credential, error) {
	var credential Credential
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("email = ?", normalizeEmail(email)).
		First(&credential).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &credential, nil
}

func (r *repository) GetCredentialBySubject(ctx context.Context, subjectID uuid.UUID) (*Credential, error) {
	var credential Credential
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("customer_id = ? OR (customer_id IS NULL AND id = ?)", subjectID, subjectID).
		First(&credential).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &credential, nil
}

func (r *repository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (r *repository) UpdatePassword(ctx context.Context, credentialID uuid.UUID, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&Credential{}).
		Where("id = ?", credentialID).
		Update("password_hash", hashedPassword)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Credential{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	}
	return err
}
