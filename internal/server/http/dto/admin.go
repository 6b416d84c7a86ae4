package dto

import "github.com/rewardhub/rewardhub/internal/domain/model"

// AdminWithdrawalResponse extends a withdrawal entry with owner identity
// for the review queue.
type AdminWithdrawalResponse struct {
	WithdrawalResponse
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
}

// NewAdminWithdrawalResponse maps a joined review row onto the wire shape.
func NewAdminWithdrawalResponse(w *model.AdminWithdrawalRequest) AdminWithdrawalResponse {
	return AdminWithdrawalResponse{
		WithdrawalResponse: NewWithdrawalResponse(&w.WithdrawalRequest),
		UserID:             w.UserID,
		UserEmail:          w.UserEmail,
	}
}

// ResolveRequest describes an administrative status transition payload.
type ResolveRequest struct {
	UserID          string `json:"user_id"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}
