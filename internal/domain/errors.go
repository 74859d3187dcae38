package domain

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrBelowMinimum        = errors.New("amount below method minimum")
	ErrAlreadyProcessed    = errors.New("already processed")
	ErrNotFound            = errors.New("not found")
	ErrTransactionAborted  = errors.New("transaction aborted")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrLoginTaken          = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidReferralCode = errors.New("invalid referral code")
)
