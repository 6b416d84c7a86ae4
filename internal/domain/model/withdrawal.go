package model

import "time"

// WithdrawalStatus describes the review lifecycle of a withdrawal request.
type WithdrawalStatus string

const (
	StatusPendingReview WithdrawalStatus = "Pending Review"
	StatusProcessed     WithdrawalStatus = "Processed"
	StatusRejected      WithdrawalStatus = "Rejected"
)

// ValidStatus reports whether s is a known withdrawal status.
func ValidStatus(s WithdrawalStatus) bool {
	switch s {
	case StatusPendingReview, StatusProcessed, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether an admin action may move a request from one
// status to another. Processed is terminal. Rejected may be re-edited
// (Rejected -> Rejected), re-approved, or returned to the review queue.
func CanTransition(from, to WithdrawalStatus) bool {
	switch from {
	case StatusPendingReview:
		return to == StatusProcessed || to == StatusRejected
	case StatusRejected:
		return to == StatusProcessed || to == StatusRejected || to == StatusPendingReview
	}
	return false
}

// PointsDelta returns the balance adjustment a transition owes the profile.
// Entering Rejected refunds the reserved points; leaving Rejected reserves
// them again. Every other transition moves no points, because submission
// already debited them.
func PointsDelta(from, to WithdrawalStatus, points int64) int64 {
	switch {
	case to == StatusRejected && from != StatusRejected:
		return points
	case from == StatusRejected && to != StatusRejected:
		return -points
	}
	return 0
}

// WithdrawalRequest is one user-initiated claim to convert points into a
// PayPal payout. All fields except Status and RejectionReason are immutable
// after creation; AmountUSD is computed once so a later rate change cannot
// rewrite history.
type WithdrawalRequest struct {
	ID              string
	UserID          string
	PaypalEmail     string
	Points          int64
	AmountUSD       float64
	Status          WithdrawalStatus
	RejectionReason *string
	CreatedAt       time.Time
}
