package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// PlaceholderEmail stands in for requests whose owner profile is gone.
const PlaceholderEmail = "Unknown Email"

// AdminUseCase serves the administrative review queue.
type AdminUseCase struct {
	withdrawals repository.WithdrawalRepository
	retries     int
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(withdrawals repository.WithdrawalRepository, retries int) *AdminUseCase {
	return &AdminUseCase{withdrawals: withdrawals, retries: retries}
}

// ListRequests returns all withdrawal requests with owner emails attached,
// optionally narrowed to a single status. Reads are retried on store
// timeouts since they are safe to repeat.
func (u *AdminUseCase) ListRequests(ctx context.Context, isAdmin bool, statusFilter string) ([]model.AdminWithdrawalRequest, error) {
	if !isAdmin {
		return nil, domainErrors.ErrPermissionDenied
	}
	if statusFilter != "" && !model.ValidStatus(model.WithdrawalStatus(statusFilter)) {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrInvalidArgument, statusFilter)
	}

	requests, err := u.listAllJoined(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.AdminWithdrawalRequest, 0, len(requests))
	for _, req := range requests {
		if statusFilter != "" && string(req.Status) != statusFilter {
			continue
		}
		if req.UserEmail == "" {
			req.UserEmail = PlaceholderEmail
		}
		result = append(result, req)
	}
	return result, nil
}

func (u *AdminUseCase) listAllJoined(ctx context.Context) ([]model.AdminWithdrawalRequest, error) {
	var lastErr error
	for attempt := 0; attempt <= u.retries; attempt++ {
		requests, err := u.withdrawals.ListAllJoined(ctx)
		if err == nil {
			return requests, nil
		}
		if !errors.Is(err, domainErrors.ErrTimeout) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
