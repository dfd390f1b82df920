package domain

import "errors"

// Operation failures surfaced by services. All are terminal for the request;
// handlers translate them to transport status codes.
var (
	// ErrNotFound covers both absent resources and resources the actor has
	// no membership path to, so private projects are not enumerable.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks the role or membership the action
	// requires.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is a uniqueness violation (duplicate membership, duplicate
	// username or email).
	ErrConflict = errors.New("conflict")

	// ErrValidation is structurally invalid input: unknown role enum,
	// assignee outside the project, missing required field.
	ErrValidation = errors.New("validation failed")
)
