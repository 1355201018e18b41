package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountDeactivated ErrorType = "account_deactivated"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenMalformed     ErrorType = "token_malformed"
	ErrorTypeTokenWrongType     ErrorType = "token_wrong_type"
	ErrorTypeTokenWrongAudience ErrorType = "token_wrong_audience"
	ErrorTypeSessionRevoked     ErrorType = "session_revoked"
	ErrorTypeSessionNotFound    ErrorType = "session_not_found"
	ErrorTypeStoreUnavailable   ErrorType = "store_unavailable"
)

// AuthError represents authentication-specific errors with security context.
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged. Expected failures
	// like invalid credentials don't need error-level logging.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The same message is returned whether the account is missing or the
// password wrong, so callers cannot enumerate users.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid username/email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewAccountDeactivatedError creates an error for deactivated accounts
func NewAccountDeactivatedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountDeactivated,
			Message: "Account is deactivated",
			Code:    http.StatusForbidden,
			Details: "Contact an administrator to reactivate this account",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s token has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenMalformedError creates an error for structurally invalid or
// badly signed tokens
func NewTokenMalformedError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenMalformed,
			Message: fmt.Sprintf("Invalid %s token", tokenType),
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     true, // may indicate tampering
		SecurityEvent: true,
	}
}

// NewTokenWrongTypeError creates an error for a token of the wrong class,
// e.g. a refresh token presented where an access token is expected.
func NewTokenWrongTypeError(expected string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenWrongType,
			Message: fmt.Sprintf("Token is not an %s token", expected),
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewTokenWrongAudienceError creates an error for issuer/audience mismatch
func NewTokenWrongAudienceError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenWrongAudience,
			Message: "Token was issued for a different audience",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewSessionRevokedError creates an error for a syntactically valid token
// whose backing session has been revoked. Kept distinct from token errors:
// server-side revocation is the whole point of tracking sessions over
// stateless tokens.
func NewSessionRevokedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionRevoked,
			Message: "Session has been revoked",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewSessionNotFoundError creates an error for tokens with no backing session
func NewSessionNotFoundError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionNotFound,
			Message: "Session not found",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewStoreUnavailableError creates an error for transient store failures
// on authorization-relevant paths, which must fail closed.
func NewStoreUnavailableError(details ...string) *AuthError {
	detail := "Temporary storage failure"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeStoreUnavailable,
			Message: "Service temporarily unavailable",
			Code:    http.StatusServiceUnavailable,
			Details: detail,
		},
		ShouldLog:     true,
		SecurityEvent: false,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from an error chain
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be
// logged, reducing noise from expected auth failures.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
