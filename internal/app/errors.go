package app

import (
	"errors"
)

var (
	ErrUsage          = errors.New("usage error")
	ErrLoginRequired  = errors.New("login required")
	ErrSessionLoading = errors.New("session is still loading")
	ErrInternal       = errors.New("internal error")
)

// Exit codes returned by ExitCode.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitLoginRequired = 3
)

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrLoginRequired):
		return ExitLoginRequired
	default:
		return ExitFailure
	}
}
