package controllers

import "errors"

var (
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidAPIKey      = errors.New("Invalid API key")

	// ErrSessionNotFound covers both "absent" and "not owned" so a non-owner
	// can never confirm a session id exists.
	ErrSessionNotFound = errors.New("Session not found")
)
