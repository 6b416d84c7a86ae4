package test

import (
	"context"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// ProfileRepositoryStub stores profiles in-memory for tests.
type ProfileRepositoryStub struct {
	Profiles map[string]*model.UserProfile
	Err      error

	GetFn             func(context.Context, string) (*model.UserProfile, error)
	CreateFn          func(context.Context, string, string) (*model.UserProfile, error)
	SetPointsFn       func(context.Context, string, int64) (*model.UserProfile, error)
	AddPointsFn       func(context.Context, string, int64) (*model.UserProfile, error)
	SetDemographicsFn func(context.Context, string, string, string) (*model.UserProfile, error)

	AddPointsCalls []AddPointsCall
}

// AddPointsCall records a balance adjustment request.
type AddPointsCall struct {
	UserID string
	Delta  int64
}

// NewProfileRepositoryStub constructs stub repository with an initialized map.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[string]*model.UserProfile)}
}

// Get fetches profile by user ID or returns not found.
func (s *ProfileRepositoryStub) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Profiles[userID]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Create registers a profile unless one exists, mirroring idempotent create.
func (s *ProfileRepositoryStub) Create(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, email)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]*model.UserProfile)
	}
	if p, ok := s.Profiles[userID]; ok {
		return p, nil
	}
	p := &model.UserProfile{ID: userID, Email: email}
	s.Profiles[userID] = p
	return p, nil
}

// SetPoints overwrites the balance verbatim.
func (s *ProfileRepositoryStub) SetPoints(ctx context.Context, userID string, points int64) (*model.UserProfile, error) {
	if s.SetPointsFn != nil {
		return s.SetPointsFn(ctx, userID, points)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p.Points = points
	return p, nil
}

// AddPoints applies a signed delta with a floor of zero and records the call.
func (s *ProfileRepositoryStub) AddPoints(ctx context.Context, userID string, delta int64) (*model.UserProfile, error) {
	s.AddPointsCalls = append(s.AddPointsCalls, AddPointsCall{UserID: userID, Delta: delta})
	if s.AddPointsFn != nil {
		return s.AddPointsFn(ctx, userID, delta)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p.Points += delta
	if p.Points < 0 {
		p.Points = 0
	}
	return p, nil
}

// SetDemographics stores country and postal code.
func (s *ProfileRepositoryStub) SetDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error) {
	if s.SetDemographicsFn != nil {
		return s.SetDemographicsFn(ctx, userID, countryCode, postalCode)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p.CountryCode = &countryCode
	p.PostalCode = &postalCode
	return p, nil
}

// WithdrawalRepositoryStub serves configured withdrawal listings.
type WithdrawalRepositoryStub struct {
	Items       []model.WithdrawalRequest
	JoinedItems []model.AdminWithdrawalRequest
	Err         error

	GetFn           func(context.Context, string, string) (*model.WithdrawalRequest, error)
	ListByUserFn    func(context.Context, string) ([]model.WithdrawalRequest, error)
	ListAllFn       func(context.Context) ([]model.WithdrawalRequest, error)
	ListAllJoinedFn func(context.Context) ([]model.AdminWithdrawalRequest, error)
}

// Get returns the matching request scoped to its owner.
func (s *WithdrawalRepositoryStub) Get(ctx context.Context, requestID, userID string) (*model.WithdrawalRequest, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, requestID, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, w := range s.Items {
		if w.ID == requestID && w.UserID == userID {
			req := w
			return &req, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns configured withdrawals for the user.
func (s *WithdrawalRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.WithdrawalRequest
	for _, w := range s.Items {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

// ListAll returns every configured withdrawal.
func (s *WithdrawalRepositoryStub) ListAll(ctx context.Context) ([]model.WithdrawalRequest, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// ListAllJoined returns withdrawals joined with owner emails.
func (s *WithdrawalRepositoryStub) ListAllJoined(ctx context.Context) ([]model.AdminWithdrawalRequest, error) {
	if s.ListAllJoinedFn != nil {
		return s.ListAllJoinedFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.JoinedItems, nil
}

// LedgerRepositoryStub lets tests control transactional outcomes.
type LedgerRepositoryStub struct {
	SubmitFn  func(context.Context, string, string, int64, float64) (*model.WithdrawalRequest, error)
	ResolveFn func(context.Context, string, string, model.WithdrawalStatus, string) (*repository.ResolveOutcome, error)

	SubmitCalls  []SubmitCall
	ResolveCalls []ResolveCall
}

// SubmitCall records a submission request.
type SubmitCall struct {
	UserID      string
	PaypalEmail string
	Points      int64
	AmountUSD   float64
}

// ResolveCall records a status transition request.
type ResolveCall struct {
	RequestID string
	UserID    string
	NewStatus model.WithdrawalStatus
	Reason    string
}

// SubmitWithdrawal tracks invocations and returns configured responses.
func (s *LedgerRepositoryStub) SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64, amountUSD float64) (*model.WithdrawalRequest, error) {
	s.SubmitCalls = append(s.SubmitCalls, SubmitCall{UserID: userID, PaypalEmail: paypalEmail, Points: points, AmountUSD: amountUSD})
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, paypalEmail, points, amountUSD)
	}
	return &model.WithdrawalRequest{
		ID:          "stub-request",
		UserID:      userID,
		PaypalEmail: paypalEmail,
		Points:      points,
		AmountUSD:   amountUSD,
		Status:      model.StatusPendingReview,
	}, nil
}

// ResolveRequest tracks invocations and returns configured outcomes.
func (s *LedgerRepositoryStub) ResolveRequest(ctx context.Context, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*repository.ResolveOutcome, error) {
	s.ResolveCalls = append(s.ResolveCalls, ResolveCall{RequestID: requestID, UserID: userID, NewStatus: newStatus, Reason: reason})
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, requestID, userID, newStatus, reason)
	}
	return &repository.ResolveOutcome{
		Request: &model.WithdrawalRequest{
			ID:     requestID,
			UserID: userID,
			Status: newStatus,
		},
		PointsAdjusted: true,
	}, nil
}
