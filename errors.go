package catalog

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside the HTTP status.
const (
	TextCodeInvalidCreds    = "INVALID_CREDENTIALS"
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeUnauthenticated = "UNAUTHENTICATED"
	TextCodeEmptyPassword   = "EMPTY_PASSWORD"
	TextCodeInvalidTTL      = "INVALID_TTL"
	TextCodeDataParseError  = "DATA_PARSE_ERROR"
)

// ErrIdentityNotFound is the error we return for non found identities.
// Callers on the login path must collapse it into ErrInvalidCredentials
// before anything crosses the wire.
var ErrIdentityNotFound = errors.New(errors.CategoryNotFound, "identity not found").
	WithCode(http.StatusNotFound)

// ErrInvalidCredentials covers both "no such user" and "wrong password";
// the two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New(errors.CategoryAuth, "the credentials provided are invalid").
	WithTextCode(TextCodeInvalidCreds).
	WithCode(http.StatusUnauthorized)

// ErrTokenExpired is returned when a token's exp claim is in the past
var ErrTokenExpired = errors.New(errors.CategoryAuth, "the authentication token has expired").
	WithTextCode(TextCodeTokenExpired).
	WithCode(http.StatusUnauthorized)

// ErrTokenMalformed covers structurally invalid tokens and signature mismatches
var ErrTokenMalformed = errors.New(errors.CategoryAuth, "the authentication token is malformed").
	WithTextCode(TextCodeTokenMalformed).
	WithCode(http.StatusUnauthorized)

// ErrUnauthenticated is the umbrella failure surfaced at the request boundary
// for any missing, invalid, or stale bearer token.
var ErrUnauthenticated = errors.New(errors.CategoryAuth, "authentication required").
	WithTextCode(TextCodeUnauthenticated).
	WithCode(http.StatusUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = errors.New(errors.CategoryValidation, "password must not be empty").
	WithTextCode(TextCodeEmptyPassword).
	WithCode(http.StatusBadRequest)

// ErrInvalidTokenTTL rejects non positive token lifetimes; this is a caller
// bug, not an authentication failure.
var ErrInvalidTokenTTL = errors.New(errors.CategoryBadInput, "token TTL must be positive").
	WithTextCode(TextCodeInvalidTTL).
	WithCode(http.StatusBadRequest)

// ErrUnableToParseData is a parse error for claim payloads
var ErrUnableToParseData = errors.New(errors.CategoryBadInput, "unable to parse data").
	WithTextCode(TextCodeDataParseError).
	WithCode(http.StatusBadRequest)

// WrapStoreError marks a collaborator I/O failure. Store errors propagate;
// they are never folded into an authentication outcome.
func WrapStoreError(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryInternal, msg)
}

// IsTokenExpiredError will check for expired tokens, including legacy
// string matched errors coming out of the jwt library.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed token errors
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUnauthenticatedError reports whether err represents a rejected request
// boundary, whether returned directly or wrapped around a token failure.
func IsUnauthenticatedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthenticated) {
		return true
	}
	var e *errors.Error
	if errors.As(err, &e) {
		return e.TextCode == TextCodeUnauthenticated
	}
	return false
}

// IsConstraintViolation reports whether err looks like a relational
// integrity failure (unique, check, or foreign key) from the driver.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") || strings.Contains(msg, "unique")
}
