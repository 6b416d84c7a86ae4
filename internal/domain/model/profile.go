package model

import "time"

// UserProfile holds the point balance and demographic data for one user.
// The identifier comes from the external identity provider and never changes.
type UserProfile struct {
	ID          string
	Email       string
	Points      int64
	CountryCode *string
	PostalCode  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
