package services

import "errors"

var (
	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrQuotaExhausted = errors.New("daily adventure generation quota exhausted")

	// ErrAdventureNotFound covers both a missing record and a record the
	// requester does not own, so callers cannot probe for existence.
	ErrAdventureNotFound = errors.New("adventure not found")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")
	ErrOptimisticLock    = errors.New("data has been modified by another user, please refresh and try again")
)
