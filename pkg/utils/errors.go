package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a failure that already carries the status and message the caller should see.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewHTTPError returns an HTTPError for status with message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// Classify passes an *HTTPError through unchanged and wraps anything else into a 500.
// The wrapped message is err's text, or fallback when err has none.
func Classify(err error, fallback string) *HTTPError {
	if err == nil {
		return nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	message := err.Error()
	if message == "" {
		message = fallback
	}
	return NewHTTPError(http.StatusInternalServerError, message)
}
