package domain

import (
	"errors"
	"fmt"
)

var (
	errValidation           error = errors.New("validation failed")
	errUserNotFound         error = errors.New("user not found")
	errTaskNotFound         error = errors.New("task not found")
	errAssignedUserNotFound error = errors.New("assigned user not found")
	errAssigneeUserNotFound error = errors.New("assignee user not found")
	errEmailTaken           error = errors.New("user with the given email already exists")
	errInvalidCredentials   error = errors.New("incorrect email or password")
	errInvalidToken         error = errors.New("token invalid")
	errForbidden            error = errors.New("forbidden")
)

func ErrValidation() error {
	return errValidation
}

// NewValidationError wraps ErrValidation with a message suitable for display.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", errValidation, msg)
}

func ErrUserNotFound() error {
	return errUserNotFound
}

func ErrTaskNotFound() error {
	return errTaskNotFound
}

func ErrAssignedUserNotFound() error {
	return errAssignedUserNotFound
}

func ErrAssigneeUserNotFound() error {
	return errAssigneeUserNotFound
}

func ErrEmailTaken() error {
	return errEmailTaken
}

func ErrInvalidCredentials() error {
	return errInvalidCredentials
}

func ErrInvalidToken() error {
	return errInvalidToken
}

func ErrForbidden() error {
	return errForbidden
}
