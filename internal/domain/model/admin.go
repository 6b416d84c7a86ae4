package model

// AdminWithdrawalRequest is the denormalized administrator view of a request,
// joined with the owning user's email.
type AdminWithdrawalRequest struct {
	WithdrawalRequest
	UserEmail string
}
