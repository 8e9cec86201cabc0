package service

import "errors"

// ErrValidation is returned when a required input field is missing or empty.
// Always wrapped with the name of the offending field.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned when the username/password pair does not
// match a stored account. Deliberately does not say which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")
