package session

import "errors"

var (
	ErrAuthentication   = errors.New("authentication failed")
	ErrRegistration     = errors.New("registration failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrClosed           = errors.New("session store closed")
)
