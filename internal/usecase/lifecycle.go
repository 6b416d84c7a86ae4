package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rewardhub/rewardhub/internal/adapter/alert"
	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// WithdrawalUseCase drives the withdrawal request lifecycle: submission by
// the owner and status resolution by administrators.
type WithdrawalUseCase struct {
	profiles    repository.ProfileRepository
	withdrawals repository.WithdrawalRepository
	ledger      repository.LedgerRepository
	alerts      alert.Notifier
	logger      *slog.Logger

	minPoints       int64
	pointsPerDollar int64
	retries         int
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(
	profiles repository.ProfileRepository,
	withdrawals repository.WithdrawalRepository,
	ledger repository.LedgerRepository,
	alerts alert.Notifier,
	logger *slog.Logger,
	minPoints, pointsPerDollar int64,
	retries int,
) *WithdrawalUseCase {
	if pointsPerDollar <= 0 {
		pointsPerDollar = 1000
	}
	return &WithdrawalUseCase{
		profiles:        profiles,
		withdrawals:     withdrawals,
		ledger:          ledger,
		alerts:          alerts,
		logger:          logger,
		minPoints:       minPoints,
		pointsPerDollar: pointsPerDollar,
		retries:         retries,
	}
}

// Submit validates and records a new withdrawal request, debiting the
// balance atomically with the ledger insert.
func (u *WithdrawalUseCase) Submit(ctx context.Context, userID, paypalEmail string, points int64) (*model.WithdrawalRequest, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if !ValidateEmail(paypalEmail) {
		return nil, fmt.Errorf("%w: paypal email", domainErrors.ErrInvalidArgument)
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", domainErrors.ErrInvalidArgument)
	}
	if points < u.minPoints {
		return nil, domainErrors.ErrBelowMinimum
	}

	profile, err := u.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	if points > profile.Points {
		return nil, domainErrors.ErrInsufficientBalance
	}

	amountUSD := float64(points) / float64(u.pointsPerDollar)
	return u.ledger.SubmitWithdrawal(ctx, userID, paypalEmail, points, amountUSD)
}

// History returns the user's withdrawal requests, newest first.
func (u *WithdrawalUseCase) History(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	return u.withdrawals.ListByUser(ctx, userID)
}

// Resolve applies an administrative status transition. The ledger update is
// authoritative; if the paired balance adjustment cannot land, Resolve
// retries it and escalates to the operator channel before reporting failure.
func (u *WithdrawalUseCase) Resolve(ctx context.Context, isAdmin bool, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*model.WithdrawalRequest, error) {
	if !isAdmin {
		return nil, domainErrors.ErrPermissionDenied
	}
	if !model.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrInvalidArgument, newStatus)
	}
	reason = NormalizeReason(reason)
	if newStatus == model.StatusRejected && reason == "" {
		return nil, fmt.Errorf("%w: rejection requires a reason", domainErrors.ErrInvalidArgument)
	}

	outcome, err := u.ledger.ResolveRequest(ctx, requestID, userID, newStatus, reason)
	if err != nil {
		return nil, err
	}

	if !outcome.PointsAdjusted && outcome.PointsDelta != 0 {
		if err := u.reconcile(ctx, outcome); err != nil {
			return outcome.Request, err
		}
	}
	return outcome.Request, nil
}

// reconcile retries the owed balance adjustment after the ledger update
// already committed. Exhausting the retries leaves the books inconsistent,
// which must reach an operator.
func (u *WithdrawalUseCase) reconcile(ctx context.Context, outcome *repository.ResolveOutcome) error {
	req := outcome.Request
	var lastErr error
	for attempt := 0; attempt <= u.retries; attempt++ {
		if _, err := u.profiles.AddPoints(ctx, req.UserID, outcome.PointsDelta); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	u.logger.Error("balance adjustment failed after status change",
		slog.String("request_id", req.ID),
		slog.String("user_id", req.UserID),
		slog.Int64("points_delta", outcome.PointsDelta),
	)
	detail := "balance adjustment could not be applied"
	if lastErr != nil {
		detail = lastErr.Error()
	}
	if err := u.alerts.Notify(ctx, alert.Alert{
		Kind:        "reconciliation_failure",
		UserID:      req.UserID,
		RequestID:   req.ID,
		PointsDelta: outcome.PointsDelta,
		Detail:      detail,
	}); err != nil {
		u.logger.Error("operator alert delivery failed", slog.String("error", err.Error()))
	}
	return fmt.Errorf("%w: request %s owes %d points", domainErrors.ErrReconciliationFailure, req.ID, outcome.PointsDelta)
}
