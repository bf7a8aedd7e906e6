package service

import "errors"

// Errors surfaced by the engines. The API layer matches them with
// errors.Is to pick a status code; anything unrecognized is treated as
// a storage failure.
var (
	// ErrNotFound reports a missing target, most often a comment that
	// is absent or already soft-deleted
	ErrNotFound = errors.New("not found")

	// ErrInvalidParent reports a parent that is missing, deleted, or
	// belongs to a different post
	ErrInvalidParent = errors.New("parent comment unavailable")

	// ErrEmptyContent rejects blank comment bodies before storage
	ErrEmptyContent = errors.New("empty comments are not allowed")

	// ErrUsernameTaken reports a registration conflict
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials reports a failed login without revealing
	// whether the username exists
	ErrInvalidCredentials = errors.New("invalid credentials")
)
