package dto

import (
	"time"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// ProfileResponse represents a user profile payload.
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Points      int64     `json:"points"`
	CountryCode *string   `json:"country_code,omitempty"`
	PostalCode  *string   `json:"postal_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfileResponse maps a domain profile onto the wire shape.
func NewProfileResponse(p *model.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		Points:      p.Points,
		CountryCode: p.CountryCode,
		PostalCode:  p.PostalCode,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// DemographicsRequest describes a demographics update payload.
type DemographicsRequest struct {
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
}

// ErrorResponse carries a machine-readable failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}
