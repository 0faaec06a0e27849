package analyzer_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicecheck/internal/analyzer"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := analyzer.NewRateLimitError("claude", fmt.Errorf("rate limited"), 30)

	assert.Contains(t, rlErr.Error(), "claude")
	assert.Contains(t, rlErr.Error(), "rate limited")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	rlErr := analyzer.NewRateLimitError("openai", underlying, 30)
	wrapped := fmt.Errorf("analyze failed: %w", rlErr)

	var target *analyzer.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "openai", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.Equal(t, underlying, errors.Unwrap(rlErr))
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	rlErr := analyzer.NewRateLimitError("openai", fmt.Errorf("err"), 0)
	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, analyzer.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, analyzer.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 42, analyzer.ParseRetryAfterHeader("42"))

	future := time.Now().Add(2 * time.Minute).UTC().Format(http.TimeFormat)
	secs := analyzer.ParseRetryAfterHeader(future)
	assert.InDelta(t, 120, secs, 3)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	assert.Equal(t, 0, analyzer.ParseRetryAfterHeader(past))
}
