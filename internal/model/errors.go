package model

import "errors"

var (
	// ErrNotFound reports that the target has no provisioned key material.
	// An unknown account and an account without keys are not distinguished.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports a missing, malformed or rejected credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited reports that the caller's bucket for the key-fetch
	// request class is exhausted.
	ErrRateLimited = errors.New("rate limited")
)
