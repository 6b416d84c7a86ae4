package test

import (
	"context"
	"sync"

	"github.com/rewardhub/rewardhub/internal/adapter/alert"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/pkg/identity"
)

// ProfileFacadeStub provides controllable behaviour for profile endpoints.
type ProfileFacadeStub struct {
	ProfileFn            func(context.Context, string, string) (*model.UserProfile, error)
	UpdateDemographicsFn func(context.Context, string, string, string) (*model.UserProfile, error)
	CreditRewardFn       func(context.Context, string, string, int64) (*model.UserProfile, error)
}

// Profile delegates to the override or returns a default profile.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID, email)
	}
	return &model.UserProfile{ID: userID, Email: email, Points: 100}, nil
}

// UpdateDemographics delegates to the override or echoes the update.
func (s ProfileFacadeStub) UpdateDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error) {
	if s.UpdateDemographicsFn != nil {
		return s.UpdateDemographicsFn(ctx, userID, countryCode, postalCode)
	}
	return &model.UserProfile{ID: userID, CountryCode: &countryCode, PostalCode: &postalCode}, nil
}

// CreditReward delegates to the override or returns the credited profile.
func (s ProfileFacadeStub) CreditReward(ctx context.Context, userID, email string, points int64) (*model.UserProfile, error) {
	if s.CreditRewardFn != nil {
		return s.CreditRewardFn(ctx, userID, email, points)
	}
	return &model.UserProfile{ID: userID, Email: email, Points: points}, nil
}

// WithdrawalFacadeStub simulates withdrawal operations.
type WithdrawalFacadeStub struct {
	SubmitFn      func(context.Context, string, string, int64) (*model.WithdrawalRequest, error)
	WithdrawalsFn func(context.Context, string) ([]model.WithdrawalRequest, error)
}

// SubmitWithdrawal executes the configured submission handler.
func (s WithdrawalFacadeStub) SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64) (*model.WithdrawalRequest, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, paypalEmail, points)
	}
	return &model.WithdrawalRequest{
		ID:          "stub-request",
		UserID:      userID,
		PaypalEmail: paypalEmail,
		Points:      points,
		Status:      model.StatusPendingReview,
	}, nil
}

// Withdrawals returns preconfigured history.
func (s WithdrawalFacadeStub) Withdrawals(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, userID)
	}
	return []model.WithdrawalRequest{{ID: "stub-request", UserID: userID, Status: model.StatusPendingReview}}, nil
}

// AdminFacadeStub simulates administrative review operations.
type AdminFacadeStub struct {
	ListFn    func(context.Context, bool, string) ([]model.AdminWithdrawalRequest, error)
	ResolveFn func(context.Context, bool, string, string, model.WithdrawalStatus, string) (*model.WithdrawalRequest, error)
}

// AdminWithdrawals returns the configured review queue.
func (s AdminFacadeStub) AdminWithdrawals(ctx context.Context, isAdmin bool, status string) ([]model.AdminWithdrawalRequest, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, isAdmin, status)
	}
	return []model.AdminWithdrawalRequest{}, nil
}

// ResolveWithdrawal executes the configured transition handler.
func (s AdminFacadeStub) ResolveWithdrawal(ctx context.Context, isAdmin bool, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*model.WithdrawalRequest, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, isAdmin, requestID, userID, newStatus, reason)
	}
	return &model.WithdrawalRequest{ID: requestID, UserID: userID, Status: newStatus}, nil
}

// RewardFacadeStub aggregates facade dependencies for HTTP layer tests.
type RewardFacadeStub struct {
	ProfileFacadeStub
	WithdrawalFacadeStub
	AdminFacadeStub
	HealthFn func(context.Context) error
}

// HealthCheck reports configured readiness.
func (s RewardFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// VerifierStub implements middleware token verification contract.
type VerifierStub struct {
	Identity *identity.Identity
	Err      error
	VerifyFn func(string) (*identity.Identity, error)
}

// Verify either delegates to the override or returns the predefined result.
func (s VerifierStub) Verify(token string) (*identity.Identity, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identity != nil {
		return s.Identity, nil
	}
	return &identity.Identity{UserID: "user-1", Email: "user@example.com"}, nil
}

// AlertNotifierStub records delivered alerts.
type AlertNotifierStub struct {
	Err error

	mu     sync.Mutex
	Alerts []alert.Alert
}

// Notify stores the alert and returns the configured error.
func (s *AlertNotifierStub) Notify(ctx context.Context, a alert.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Alerts = append(s.Alerts, a)
	return s.Err
}

// Delivered returns a snapshot of recorded alerts.
func (s *AlertNotifierStub) Delivered() []alert.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]alert.Alert, len(s.Alerts))
	copy(out, s.Alerts)
	return out
}
