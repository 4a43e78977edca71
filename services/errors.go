package services

import "errors"

// Sentinel errors returned by the workflow services. Controllers map these to
// HTTP status codes with errors.Is; everything else surfaces as a 500.
var (
	ErrValidation       = errors.New("invalid request")
	ErrAccessDenied     = errors.New("access denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrCapacityExceeded = errors.New("group is at capacity")
	ErrInvalidState     = errors.New("invite is no longer pending")
	ErrStoreUnavailable = errors.New("store unavailable")
)
