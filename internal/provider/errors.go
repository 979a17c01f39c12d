package provider

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is matched by credential and permission failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is matched when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRefExists is matched when a ref with the requested name already exists.
	ErrRefExists = errors.New("reference already exists")

	// ErrAPI is matched by every other hosting API failure.
	ErrAPI = errors.New("api error")
)

// ErrorKind classifies a hosting API failure.
type ErrorKind int

const (
	// KindAPI is an unclassified failure (network, validation, server).
	KindAPI ErrorKind = iota
	// KindUnauthorized is a 401 or a non-rate-limit 403.
	KindUnauthorized
	// KindNotFound is a 404.
	KindNotFound
	// KindRefExists is a 422 reporting an existing reference.
	KindRefExists
)

// String returns the lowercase name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRefExists:
		return "ref_exists"
	default:
		return "api"
	}
}

// APIError is a classified hosting API failure. Its message is the wrapped
// error's message, unmodified.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

// Error returns the original error text.
func (e *APIError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// Unwrap returns the original error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return true
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRefExists:
		return e.Kind == KindRefExists
	}
	return false
}

// Classify wraps err in an APIError based on the HTTP status code and
// response message. A nil err returns nil.
func Classify(err error, statusCode int, message string) error {
	if err == nil {
		return nil
	}
	var existing *APIError
	if errors.As(err, &existing) {
		return err
	}

	kind := KindAPI
	switch statusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		if !strings.Contains(strings.ToLower(message), "rate limit") {
			kind = KindUnauthorized
		}
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusUnprocessableEntity:
		if strings.Contains(strings.ToLower(message), "already exists") {
			kind = KindRefExists
		}
	}

	return &APIError{Kind: kind, StatusCode: statusCode, Err: err}
}

// KindOf returns the classification of err, KindAPI when unclassified.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindAPI
}
