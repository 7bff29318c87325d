package auth

import (
	"time"

	"eventures/internal/customers"
)

// represents the authentication response
type AuthResponse struct {
	User         ProfileResponse `json:"user"`
	Role         string          `json:"role"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
}

// represents account data in responses (without sensitive info)
type ProfileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfileResponse(credential *customers.Credential) ProfileResponse {
	profile := ProfileResponse{
		ID:        credential.SubjectID().String(),
		Email:     credential.Email,
		Role:      string(credential.Role),
		CreatedAt: credential.CreatedAt,
	}
	if credential.Customer != nil {
		profile.Name = credential.Customer.Name
		profile.PhoneNumber = credential.Customer.PhoneNumber
	}
	return profile
}
