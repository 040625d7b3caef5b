// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// ErrorKind tags a domain error so callers can branch on it without
// comparing message strings.
type ErrorKind int

// Error kinds returned by the stores.
const (
	KindUnknown ErrorKind = iota
	KindEmptyName
	KindDuplicateName
	KindNotFound
	KindInvalidQuantity
	KindNegativeQuantity
	KindEmptyUnit
	KindUnknownCategory
	KindEmptyDate
	KindInvalidDateFormat
	KindProtectedCategory
	KindCategoryInUse
)

var kindNames = map[ErrorKind]string{
	KindUnknown:           "Unknown",
	KindEmptyName:         "EmptyName",
	KindDuplicateName:     "DuplicateName",
	KindNotFound:          "NotFound",
	KindInvalidQuantity:   "InvalidQuantity",
	KindNegativeQuantity:  "NegativeQuantity",
	KindEmptyUnit:         "EmptyUnit",
	KindUnknownCategory:   "UnknownCategory",
	KindEmptyDate:         "EmptyDate",
	KindInvalidDateFormat: "InvalidDateFormat",
	KindProtectedCategory: "ProtectedCategory",
	KindCategoryInUse:     "CategoryInUse",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a domain error with a kind and a message meant for the end user.
type Error struct {
	Message string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrNotFound) matches any not-found error regardless of
// its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind.
var (
	ErrEmptyName         = &Error{Kind: KindEmptyName, Message: "name cannot be empty"}
	ErrDuplicateName     = &Error{Kind: KindDuplicateName, Message: "name already exists"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidQuantity   = &Error{Kind: KindInvalidQuantity, Message: "quantity must be a number"}
	ErrNegativeQuantity  = &Error{Kind: KindNegativeQuantity, Message: "quantity cannot be negative"}
	ErrEmptyUnit         = &Error{Kind: KindEmptyUnit, Message: "unit cannot be empty"}
	ErrUnknownCategory   = &Error{Kind: KindUnknownCategory, Message: "food type does not exist"}
	ErrEmptyDate         = &Error{Kind: KindEmptyDate, Message: "expiration date cannot be empty"}
	ErrInvalidDateFormat = &Error{Kind: KindInvalidDateFormat, Message: "expiration date must be in the format YYYY-MM-DD"}
	ErrProtectedCategory = &Error{Kind: KindProtectedCategory, Message: "the default food type cannot be changed"}
	ErrCategoryInUse     = &Error{Kind: KindCategoryInUse, Message: "food type is still in use"}

	// ErrInvalidConfig is returned when configuration values fail validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NewError creates a domain error of the given kind with a specific message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUserError reports whether err carries a domain kind and can be shown
// to the user as is.
func IsUserError(err error) bool {
	return KindOf(err) != KindUnknown
}
