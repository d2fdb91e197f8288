package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	assert.ErrorAs(t, statusError(http.StatusTooManyRequests, time.Second, cause), &rl)
	assert.Equal(t, time.Second, rl.RetryAfter)

	var rejected *ErrRequestRejected
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound} {
		assert.ErrorAs(t, statusError(code, 0, cause), &rejected, "status %d", code)
	}

	var unavail *ErrProviderUnavailable
	for _, code := range []int{0, http.StatusRequestTimeout, http.StatusInternalServerError, 529} {
		assert.ErrorAs(t, statusError(code, 0, cause), &unavail, "status %d", code)
	}
	assert.ErrorIs(t, statusError(http.StatusBadRequest, 0, cause), cause)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	header := func(v string) http.Header {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		return h
	}

	assert.Zero(t, parseRetryAfter(header(""), now))
	assert.Equal(t, 30*time.Second, parseRetryAfter(header("30"), now))
	assert.Equal(t, 90*time.Second, parseRetryAfter(header(now.Add(90*time.Second).Format(http.TimeFormat)), now))
	assert.Zero(t, parseRetryAfter(header(now.Add(-time.Minute).Format(http.TimeFormat)), now))
	assert.Zero(t, parseRetryAfter(header("soon"), now))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "rate limited: boom", (&ErrRateLimit{Err: errors.New("boom")}).Error())
	assert.Equal(t, "model provider unavailable", (&ErrProviderUnavailable{}).Error())
	assert.Contains(t, (&ErrRequestRejected{Status: 401, Err: errors.New("bad key")}).Error(), "401 Unauthorized")
}
