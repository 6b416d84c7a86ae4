package repository

import (
	"context"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// ResolveOutcome reports a committed status transition. The ledger update is
// authoritative; PointsAdjusted is false when the owed balance adjustment
// could not be applied alongside it (missing profile row), in which case the
// caller must reconcile the remaining PointsDelta.
type ResolveOutcome struct {
	Request        *model.WithdrawalRequest
	PointsDelta    int64
	PointsAdjusted bool
}

// LedgerRepository groups the mutations that must couple a withdrawal record
// with the owner's balance inside one transactional boundary.
type LedgerRepository interface {
	// SubmitWithdrawal checks the balance and debits it under a row lock,
	// then appends the Pending Review ledger entry. Two concurrent calls
	// can never both pass the balance check against a stale value.
	SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64, amountUSD float64) (*model.WithdrawalRequest, error)

	// ResolveRequest validates the transition against the current status
	// under a row lock, applies it together with the owed balance
	// adjustment, and clamps the balance at zero on debits.
	ResolveRequest(ctx context.Context, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*ResolveOutcome, error)
}
