package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blankError struct{}

func (blankError) Error() string { return "" }

func TestClassifyPassesHTTPErrorThrough(t *testing.T) {
	original := NewHTTPError(http.StatusTooManyRequests, "slow down")
	wrapped := fmt.Errorf("dispatch: %w", original)

	got := Classify(wrapped, "fallback")

	assert.Same(t, original, got)
}

func TestClassifyWrapsPlainErrors(t *testing.T) {
	got := Classify(errors.New("dial tcp: refused"), "fallback")

	require.NotNil(t, got)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "dial tcp: refused", got.Message)
}

func TestClassifyUsesFallbackForEmptyMessage(t *testing.T) {
	got := Classify(blankError{}, "fallback")

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "fallback", got.Message)
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil, "fallback"))
}

func TestRespondErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, NewHTTPError(http.StatusBadRequest, "messages is required"), "fallback")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"statusCode":400,"message":"messages is required"}`, rec.Body.String())
}
