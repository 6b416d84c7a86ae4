package dto

import (
	"time"

	"github.com/rewardhub/rewardhub/internal/domain/model"
)

// WithdrawRequest describes a withdrawal submission payload.
type WithdrawRequest struct {
	PaypalEmail string `json:"paypal_email"`
	Points      int64  `json:"points"`
}

// WithdrawalResponse describes a withdrawal request entry.
type WithdrawalResponse struct {
	ID              string    `json:"id"`
	PaypalEmail     string    `json:"paypal_email"`
	Points          int64     `json:"points"`
	AmountUSD       float64   `json:"amount_usd"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewWithdrawalResponse maps a domain request onto the wire shape.
func NewWithdrawalResponse(w *model.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:              w.ID,
		PaypalEmail:     w.PaypalEmail,
		Points:          w.Points,
		AmountUSD:       w.AmountUSD,
		Status:          string(w.Status),
		RejectionReason: w.RejectionReason,
		CreatedAt:       w.CreatedAt,
	}
}
