package app

import (
	"context"

	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/usecase"
)

// HealthChecker reports storage readiness.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RewardFacade aggregates the use cases behind a single surface for the
// HTTP layer.
type RewardFacade struct {
	profiles    *usecase.ProfileUseCase
	withdrawals *usecase.WithdrawalUseCase
	admin       *usecase.AdminUseCase
	health      HealthChecker
}

func NewRewardFacade(profiles *usecase.ProfileUseCase, withdrawals *usecase.WithdrawalUseCase, admin *usecase.AdminUseCase, health HealthChecker) *RewardFacade {
	return &RewardFacade{profiles: profiles, withdrawals: withdrawals, admin: admin, health: health}
}

func (f *RewardFacade) Profile(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	return f.profiles.GetOrCreate(ctx, userID, email)
}

func (f *RewardFacade) UpdateDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error) {
	return f.profiles.UpdateDemographics(ctx, userID, countryCode, postalCode)
}

func (f *RewardFacade) CreditReward(ctx context.Context, userID, email string, points int64) (*model.UserProfile, error) {
	return f.profiles.CreditPoints(ctx, userID, email, points)
}

func (f *RewardFacade) SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64) (*model.WithdrawalRequest, error) {
	return f.withdrawals.Submit(ctx, userID, paypalEmail, points)
}

func (f *RewardFacade) Withdrawals(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.History(ctx, userID)
}

func (f *RewardFacade) AdminWithdrawals(ctx context.Context, isAdmin bool, status string) ([]model.AdminWithdrawalRequest, error) {
	return f.admin.ListRequests(ctx, isAdmin, status)
}

func (f *RewardFacade) ResolveWithdrawal(ctx context.Context, isAdmin bool, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*model.WithdrawalRequest, error) {
	return f.withdrawals.Resolve(ctx, isAdmin, requestID, userID, newStatus, reason)
}

func (f *RewardFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
