package errors

import (
	// Go Internal Packages
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies an error so callers can react without string matching.
type Kind uint8

const (
	Other        Kind = iota // Unclassified error
	Invalid                  // A precondition or input validation failed
	NotFound                 // Entity does not exist
	Conflict                 // Operation conflicts with the current state
	Unconfigured             // Gateway has no usable credentials
	Rejected                 // Gateway declined the request
	Unavailable              // Transport-level failure talking to an upstream
	Persistence              // Record could not be written
	Dispatch                 // Delivery link could not be built or opened
	Internal                 // Everything the caller cannot recover from
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unconfigured:
		return "unconfigured"
	case Rejected:
		return "rejected"
	case Unavailable:
		return "unavailable"
	case Persistence:
		return "persistence"
	case Dispatch:
		return "dispatch"
	case Internal:
		return "internal"
	}
	return "other"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a classified error. The wrapped error is optional.
func E(kind Kind, message string, err ...error) error {
	e := &Error{Kind: kind, Message: message}
	if len(err) > 0 {
		e.Err = err[0]
	}
	return e
}

// KindOf returns the Kind of the outermost classified error in the chain,
// or Other when the chain carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether the error chain carries the given kind.
func Is(kind Kind, err error) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-facing message of a classified error,
// falling back to the raw error text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// HTTPStatus maps an error kind onto an HTTP response code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unconfigured, Rejected:
		return http.StatusUnprocessableEntity
	case Unavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationErrors collects per-field validation failures so a caller
// gets every problem in one round trip.
type ValidationErrors struct {
	fields map[string]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{fields: make(map[string]string)}
}

func (v *ValidationErrors) Add(field, message string) {
	v.fields[field] = message
}

func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when no failures were recorded.
func (v *ValidationErrors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return v
}
