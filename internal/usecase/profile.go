package usecase

import (
	"context"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// ProfileUseCase manages user profiles and point credits.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// GetOrCreate returns the profile for the user, materializing an empty one
// on first contact. Concurrent first requests converge on a single row.
func (u *ProfileUseCase) GetOrCreate(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	return u.profiles.Create(ctx, userID, email)
}

// CreditPoints applies a positive reward credit to the user's balance,
// creating the profile first if the reward arrives before any visit.
func (u *ProfileUseCase) CreditPoints(ctx context.Context, userID, email string, points int64) (*model.UserProfile, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if points <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	if _, err := u.profiles.Create(ctx, userID, email); err != nil {
		return nil, err
	}
	return u.profiles.AddPoints(ctx, userID, points)
}

// UpdateDemographics stores the user's country and postal code.
func (u *ProfileUseCase) UpdateDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if countryCode == "" {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.profiles.SetDemographics(ctx, userID, countryCode, postalCode)
}
