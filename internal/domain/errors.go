package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so callers can tell a rule violation
// ("you are not allowed") from a collaborator failure ("try again").
type ErrorKind string

const (
	KindUnauthenticated     ErrorKind = "unauthenticated"
	KindNotFound            ErrorKind = "not_found"
	KindValidation          ErrorKind = "validation_error"
	KindCapacityExceeded    ErrorKind = "capacity_exceeded"
	KindRateLimited         ErrorKind = "rate_limited"
	KindLocationUnavailable ErrorKind = "location_unavailable"
	KindConflict            ErrorKind = "conflict"
	KindDependency          ErrorKind = "dependency_error"
)

// Error is the typed error returned by every use case.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation builds a validation error with a caller supplied reason.
func Validation(message string) error {
	return newError(KindValidation, message)
}

// Dependency wraps a persistence or storage failure.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindDependency, Message: op, Err: err}
}

// KindOf reports the kind of err. Untyped errors count as dependency failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindDependency
}

// Retryable is true only for collaborator failures.
func Retryable(err error) bool {
	return KindOf(err) == KindDependency
}

var (
	ErrUnauthenticated = newError(KindUnauthenticated, "not authenticated")
	ErrInvalidToken    = newError(KindUnauthenticated, "invalid or expired token")

	ErrProfileNotFound        = newError(KindNotFound, "profile not found")
	ErrMatchNotFound          = newError(KindNotFound, "match not found")
	ErrVenueNotFound          = newError(KindNotFound, "venue not found")
	ErrDateSuggestionNotFound = newError(KindNotFound, "date suggestion not found")
	ErrDealBreakersNotFound   = newError(KindNotFound, "deal breakers not found")
	ErrSwipeNotFound          = newError(KindNotFound, "swipe not found")
	ErrMessageLimitNotFound   = newError(KindNotFound, "message limit not found")

	ErrInvalidInput       = newError(KindValidation, "invalid input")
	ErrCannotSwipeSelf    = newError(KindValidation, "cannot swipe on yourself")
	ErrCannotBlockSelf    = newError(KindValidation, "cannot block yourself")
	ErrCannotReportSelf   = newError(KindValidation, "cannot report yourself")
	ErrEmptyContent       = newError(KindValidation, "message cannot be empty")
	ErrMessageTooLong     = newError(KindValidation, "message is too long")
	ErrInvalidPhotoSlot   = newError(KindValidation, "invalid photo slot")
	ErrInvalidCategory    = newError(KindValidation, "unknown venue category")
	ErrInvalidReason      = newError(KindValidation, "unknown report reason")
	ErrMatchNotActive     = newError(KindValidation, "match is no longer active")
	ErrVenueInactive      = newError(KindValidation, "venue is not active")
	ErrOwnSuggestion      = newError(KindValidation, "cannot respond to your own date suggestion")
	ErrSuggestionResolved = newError(KindValidation, "date suggestion already answered")

	ErrMatchLimitReached   = newError(KindCapacityExceeded, "match limit reached, unmatch someone to continue")
	ErrMessageLimitReached = newError(KindRateLimited, "message limit reached, wait for a reply or for the limit to reset")
	ErrLocationUnavailable = newError(KindLocationUnavailable, "location data not available for both users")

	ErrProfileAlreadyExists = newError(KindConflict, "profile already exists")
	ErrSwipeAlreadyExists   = newError(KindConflict, "already swiped on this profile")
	ErrMatchAlreadyExists   = newError(KindConflict, "match already exists")
	ErrSuggestionPending    = newError(KindConflict, "a date suggestion is already pending")
	ErrDuplicate            = newError(KindConflict, "duplicate record")
)
