package errors

import (
	"errors"
)

var (
	ErrTemporary = errors.New("temporary error")
	ErrPermanent = errors.New("permanent error")

	ErrRequestCreation = errors.New("request creation error")
	ErrNoTarget        = errors.New("no url or template set")
	ErrInvalidBaseURL  = errors.New("invalid base url")

	ErrNetwork   = errors.New("network error")
	ErrTimeout   = errors.New("timeout error")
	ErrBadStatus = errors.New("bad status code")
)

// IsTemporary returns true if the error is considered temporary and the
// request could be attempted again by the caller.
func IsTemporary(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrBadStatus) || errors.Is(err, ErrTemporary)
}

// Is reports whether any error in err's chain is an instance of target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
