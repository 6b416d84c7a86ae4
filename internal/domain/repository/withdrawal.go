package repository

import (
	"context"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// WithdrawalRepository provides read access to the withdrawal ledger.
// Listings are ordered newest-first.
type WithdrawalRepository interface {
	Get(ctx context.Context, requestID, userID string) (*model.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]model.WithdrawalRequest, error)
	ListAllJoined(ctx context.Context) ([]model.AdminWithdrawalRequest, error)
}
