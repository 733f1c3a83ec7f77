package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeBrowserBusy  = "BROWSER_BUSY"
	ErrCodeInternal     = "INTERNAL_ERROR"

	// Browser lifecycle.
	ErrCodeLaunchFailed = "BROWSER_LAUNCH_FAILED"

	// Scrape pipeline outcomes. These are reported inside a ScrapeResult
	// with success=false rather than as HTTP errors.
	ErrCodeNavigationTimeout = "NAVIGATION_TIMEOUT"
	ErrCodeNavigation        = "NAVIGATION_FAILED"
	ErrCodeSelectorTimeout   = "SELECTOR_TIMEOUT"
	ErrCodeExtraction        = "EXTRACTION_FAILED"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ErrorCode returns the code of the first ScrapeError in err's chain,
// or ErrCodeInternal when there is none.
func ErrorCode(err error) string {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsScrapeFailure reports whether err is an outcome of the scrape pipeline
// itself (timeouts, navigation, extraction). Those are well-formed requests
// that found nothing usable and are answered with success=false, not with an
// HTTP error status.
func IsScrapeFailure(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeNavigationTimeout, ErrCodeNavigation, ErrCodeSelectorTimeout, ErrCodeExtraction:
		return true
	default:
		return false
	}
}
