package errors

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInactive         = errors.New("user deactivated")
	ErrConflict         = errors.New("already exists")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNoRecentDrink    = errors.New("no recent drink")
	ErrStoreUnavailable = errors.New("store unavailable")
)
