package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")

	// Order errors
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order cannot move to that status")
	ErrOrderClosed       = errors.New("order is already closed")
	ErrOrderNotReady     = errors.New("order is not ready for delivery")

	// Dispatch errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskCompleted = errors.New("task is already completed")

	// Staff errors
	ErrStaffNotFound = errors.New("staff member not found")
	ErrStaffInactive = errors.New("staff member is not active")
	ErrNotADriver    = errors.New("staff member cannot take dispatch tasks")
)
