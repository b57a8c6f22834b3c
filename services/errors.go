package services

import "errors"

// Errors returned by the services. Their text is safe to show to end users.
var (
	ErrNoSuchUser         = errors.New("no such user")
	ErrWrongPassword      = errors.New("wrong password")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmptyBody          = errors.New("post body cannot be empty")
	ErrBodyTooLong        = errors.New("post body is too long")
)
