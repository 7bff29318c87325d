package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventures/internal/customers"
	"eventures/internal/shared/config"
)

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) CreateWithCredential(ctx context.Context, customer *customers.Customer, credential *customers.Credential) error {
	args := m.Called(ctx, customer, credential)
	return args.Error(0)
}

func (m *mockCustomerRepository) CreateCredential(ctx context.Context, credential *customers.Credential) error {
	return m.Called(ctx, credential).Error(0)
}

func (m *mockCustomerRepository) GetCredentialByEmail(ctx context.Context, email string) (*customers.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Credential), args.Error(1)
}

func (m *mockCustomerRepository) GetCredentialBySubject(ctx context.Context, subjectID uuid.UUID) (*customers.Credential, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Credential), args.Error(1)
}

func (m *mockCustomerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*customers.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Customer), args.Error(1)
}

func (m *mockCustomerRepository) UpdatePassword(ctx context.Context, credentialID uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, credentialID, hashedPassword).Error(0)
}

func (m *mockCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

var testJWT = config.JWTConfig{
	Secret:           "test-secret",
	JWTExpiresIn:     15 * time.Minute,
	RefreshExpiresIn: 24 * time.Hour,
}

func storedCredential(t *testing.T, password string, role customers.Role) *customers.Credential {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	customerID := uuid.New()
	return &customers.Credential{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hash,
		Role:         role,
		CustomerID:   &customerID,
		Customer:     &customers.Customer{ID: customerID, Name: "Ada", PhoneNumber: "5550100", Email: "ada@example.com"},
	}
}

func TestRegister_CreatesCustomerAndCredential(t *testing.T) {
	repo := new(mockCustomerRepository)
	svc := NewService(repo, testJWT)
	ctx := context.Background()

	repo.On("EmailExists", ctx, "ada@example.com").Return(false, nil)
	repo.On("CreateWithCredential", ctx,
		mock.AnythingOfType("*customers.Customer"),
		mock.MatchedBy(func(c *customers.Credential) bool {
			cost, err := bcrypt.Cost([]byte(c.PasswordHash))
			return err == nil && cost == PasswordCost &&
				bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("secret1")) == nil &&
				c.Role == customers.RoleCustomer
		}),
	).Run(func(args mock.Arguments) {
		customer := args.Get(1).(*customers.Customer)
		credential := args.Get(2).(*customers.Credential)
		customer.ID = uuid.New()
		credential.CustomerID = &customer.ID
	}).Return(nil)

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name:        " Ada ",
		PhoneNumber: "5550100",
		Email:       "ada@example.com",
		Password:    "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER", resp.Role)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeAccess, claims.Type)
	assert.Equal(t, resp.User.ID, claims.UserID)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockCustomerRepository)
	svc := NewService(repo, testJWT)

	repo.On("EmailExists", mock.Anything, "ada@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{Name: "Ada", PhoneNumber: "5550100", Email: "ada@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "CreateWithCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_LostRaceOnUniqueEmail(t *testing.T) {
	repo := new(mockCustomerRepository)
	svc := NewService(repo, testJWT)

	repo.On("EmailExists", mock.Anything, "ada@example.com").Return(false, nil)
	repo.On("CreateWithCredential", mock.Anything, mock.Anything, mock.Anything).Return(customers.ErrAlreadyExists)

	_, err := svc.Register(context.Background(), &RegisterRequest{Name: "Ada", PhoneNumber: "5550100", Email: "ada@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	admin := storedCredential(t, "hunter22", customers.RoleAdmin)

	t.Run("success returns role", func(t *testing.T) {
		repo := new(mockCustomerRepository)
		repo.On("GetCredentialByEmail", mock.Anything, "ada@example.com").Return(admin, nil)
		svc := NewService(repo, testJWT)

		resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "hunter22"})

		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.Equal(t, admin.CustomerID.String(), resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockCustomerRepository)
		repo.On("GetCredentialByEmail", mock.Anything, "ada@example.com").Return(admin, nil)
		svc := NewService(repo, testJWT)

		_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		repo := new(mockCustomerRepository)
		repo.On("GetCredentialByEmail", mock.Anything, "who@example.com").Return(nil, customers.ErrNotFound)
		svc := NewService(repo, testJWT)

		_, err := svc.Login(context.Background(), &LoginRequest{Email: "who@example.com", Password: "hunter22"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	credential := storedCredential(t, "hunter22", customers.RoleCustomer)
	repo := new(mockCustomerRepository)
	repo.On("GetCredentialByEmail", mock.Anything, "ada@example.com").Return(credential, nil)
	repo.On("GetCredentialBySubject", mock.Anything, *credential.CustomerID).Return(credential, nil)
	svc := NewService(repo, testJWT)

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "an access token cannot be used to refresh")

	_, err = svc.RefreshToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsOtherSecret(t *testing.T) {
	repo := new(mockCustomerRepository)
	other := NewService(repo, config.JWTConfig{Secret: "other", JWTExpiresIn: time.Minute, RefreshExpiresIn: time.Hour})
	svc := NewService(repo, testJWT)

	token, err := other.(*service).signToken("id", "a@b.c", "CUSTOMER", tokenTypeAccess, time.Now(), time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	credential := storedCredential(t, "oldpass", customers.RoleCustomer)
	subject := *credential.CustomerID

	t.Run("updates hash", func(t *testing.T) {
		repo := new(mockCustomerRepository)
		repo.On("GetCredentialBySubject", mock.Anything, subject).Return(credential, nil)
		repo.On("UpdatePassword", mock.Anything, credential.ID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass")) == nil
		})).Return(nil)
		svc := NewService(repo, testJWT)

		err := svc.ChangePassword(context.Background(), subject, &ChangePasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(mockCustomerRepository)
		repo.On("GetCredentialBySubject", mock.Anything, subject).Return(credential, nil)
		svc := NewService(repo, testJWT)

		err := svc.ChangePassword(context.Background(), subject, &ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "newpass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
