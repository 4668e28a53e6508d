// Package common defines shared constants and sentinel errors used across
// the gophrecipes client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Session credential errors (malformed or undecodable token).
	ErrInvalidToken = errors.New("invalid token")

	// Account errors.
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Remote recipe provider errors.
	ErrRemoteFetchFailed = errors.New("remote fetch failed")

	// Caller input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Meal plan errors.
	ErrInvalidSlot = errors.New("invalid meal plan slot")
)
