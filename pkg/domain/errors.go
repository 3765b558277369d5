package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
)

// Ledger errors. The messages are returned verbatim to API clients.
//
//nolint:staticcheck
var (
	// ErrAccountNotFound is returned when an account id does not resolve.
	ErrAccountNotFound = errors.New("Account not found")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the current balance.
	ErrInsufficientFunds = errors.New("Insufficient funds")
	// ErrInvalidAmount is returned in strict mode for non-positive amounts.
	ErrInvalidAmount = errors.New("Amount must be positive")
	// ErrAmountOutOfRange is returned for amounts or balances the store cannot
	// hold exactly: more than 4 decimal places or more than 15 integer digits.
	ErrAmountOutOfRange = errors.New("Amount out of range")
)
