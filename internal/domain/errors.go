package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing API key",
		StatusCode: 401,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Access denied",
		StatusCode: 403,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrRequestNotFound = &AppError{
		Code:       "REQUEST_NOT_FOUND",
		Message:    "Verification request not found",
		StatusCode: 404,
	}

	ErrProviderNotFound = &AppError{
		Code:       "PROVIDER_NOT_FOUND",
		Message:    "Provider not found",
		StatusCode: 404,
	}

	// ErrInvalidStateTransition is returned when a decide or revoke is
	// attempted against a status that no longer satisfies its precondition.
	ErrInvalidStateTransition = &AppError{
		Code:       "INVALID_STATE_TRANSITION",
		Message:    "Operation is not valid for the current verification status",
		StatusCode: 409,
	}

	// ErrConcurrentSubmission is returned when a second submission races an
	// in-flight one for the same provider.
	ErrConcurrentSubmission = &AppError{
		Code:       "CONCURRENT_SUBMISSION",
		Message:    "A verification review is already in progress for this provider",
		StatusCode: 409,
	}

	ErrNoDocuments = &AppError{
		Code:       "NO_DOCUMENTS",
		Message:    "At least one credential document is required",
		StatusCode: 422,
	}

	ErrInvalidDocument = &AppError{
		Code:       "INVALID_DOCUMENT",
		Message:    "Invalid document format or corrupted file",
		StatusCode: 422,
	}

	ErrReviewNotesRequired = &AppError{
		Code:       "REVIEW_NOTES_REQUIRED",
		Message:    "Rejection requires review notes",
		StatusCode: 422,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrAPIKeyNotFound = &AppError{
		Code:       "API_KEY_NOT_FOUND",
		Message:    "API key not found",
		StatusCode: 401,
	}

	ErrAPIKeyRevoked = &AppError{
		Code:       "API_KEY_REVOKED",
		Message:    "API key has been revoked",
		StatusCode: 401,
	}

	ErrInvalidAPIKeyFormat = &AppError{
		Code:       "INVALID_API_KEY_FORMAT",
		Message:    "Invalid API key format",
		StatusCode: 401,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, slow down",
		StatusCode: 429,
	}
)
