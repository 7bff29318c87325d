package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"eventures/internal/customers"
	"eventures/internal/shared/config"
	"eventures/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// PasswordCost is the bcrypt work factor for stored credentials
const PasswordCost = 10

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, subjectID uuid.UUID, req *ChangePasswordRequest) error
	Profile(ctx context.Context, subjectID uuid.UUID) (*ProfileResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo customers.Repository
	jwt  config.JWTConfig
	now  func() time.Time
}

func NewService(repo customers.Repository, jwtConfig config.JWTConfig) Service {
	return &service{
		repo: repo,
		jwt:  jwtConfig,
		now:  time.Now,
	}
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	customer := &customers.Customer{
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       req.Email,
	}
	credential := &customers.Credential{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         customers.RoleCustomer,
	}

	if err := s.repo.CreateWithCredential(ctx, customer, credential); err != nil {
		if errors.Is(err, customers.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	credential.Customer = customer

	return s.authResponse(ctx, credential, "register")
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	credential, err := s.repo.GetCredentialByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			logger.GetDefault().LogAuthFailure(ctx, "unknown email", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)); err != nil {
		logger.GetDefault().LogAuthFailure(ctx, "password mismatch", req.Email)
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(ctx, credential, "password")
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	subjectID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// the account may have been removed since the token was issued
	credential, err := s.repo.GetCredentialBySubject(ctx, subjectID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(credential.SubjectID().String(), credential.Email, string(credential.Role))
}

func (s *service) ChangePassword(ctx context.Context, subjectID uuid.UUID, req *ChangePasswordRequest) error {
	credential, err := s.repo.GetCredentialBySubject(ctx, subjectID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, credential.ID, hashedPassword)
}

func (s *service) Profile(ctx context.Context, subjectID uuid.UUID) (*ProfileResponse, error) {
	credential, err := s.repo.GetCredentialBySubject(ctx, subjectID)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	profile := toProfileResponse(credential)
	return &profile, nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) authResponse(ctx context.Context, credential *customers.Credential, method string) (*AuthResponse, error) {
	subject := credential.SubjectID().String()
	tokenPair, err := s.generateTokenPair(subject, credential.Email, string(credential.Role))
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogAuthSuccess(ctx, subject, method)

	return &AuthResponse{
		User:         toProfileResponse(credential),
		Role:         string(credential.Role),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) generateTokenPair(userID, email, role string) (*TokenPair, error) {
	now := s.now()

	accessToken, err := s.signToken(userID, email, role, tokenTypeAccess, now, s.jwt.JWTExpiresIn)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signToken(userID, email, role, tokenTypeRefresh, now, s.jwt.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwt.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) signToken(userID, email, role, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tokenIssuer,
			Subject:   userID,
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwt.Secret))
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
