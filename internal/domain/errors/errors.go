package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrBelowMinimum          = errors.New("below minimum withdrawal")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrTimeout               = errors.New("store timeout")
	ErrReconciliationFailure = errors.New("reconciliation failure")
)
