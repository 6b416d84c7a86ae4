package handlers

import (
	"context"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// ProfileFacade describes profile capabilities required by handlers.
type ProfileFacade interface {
	Profile(ctx context.Context, userID, email string) (*model.UserProfile, error)
	UpdateDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error)
	CreditReward(ctx context.Context, userID, email string, points int64) (*model.UserProfile, error)
}

// WithdrawalFacade encapsulates withdrawal operations exposed via HTTP.
type WithdrawalFacade interface {
	SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64) (*model.WithdrawalRequest, error)
	Withdrawals(ctx context.Context, userID string) ([]model.WithdrawalRequest, error)
}

// AdminFacade provides administrative review operations.
type AdminFacade interface {
	AdminWithdrawals(ctx context.Context, isAdmin bool, status string) ([]model.AdminWithdrawalRequest, error)
	ResolveWithdrawal(ctx context.Context, isAdmin bool, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*model.WithdrawalRequest, error)
}

// RewardFacade aggregates the full set of operations used across handlers.
type RewardFacade interface {
	ProfileFacade
	WithdrawalFacade
	AdminFacade
	HealthCheck(ctx context.Context) error
}
