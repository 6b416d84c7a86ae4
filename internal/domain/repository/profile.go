package repository

import (
	"context"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// ProfileRepository is the single source of truth for user balances and
// demographics. SetPoints stores the value verbatim; clamping is the
// caller's concern. AddPoints applies a signed delta with a floor of zero.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Create(ctx context.Context, userID, email string) (*model.UserProfile, error)
	SetPoints(ctx context.Context, userID string, points int64) (*model.UserProfile, error)
	AddPoints(ctx context.Context, userID string, delta int64) (*model.UserProfile, error)
	SetDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error)
}
