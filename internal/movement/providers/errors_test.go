package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		category  ErrorCategory
		retryable bool
	}{
		{http.StatusNotFound, ErrorNotFound, false},
		{http.StatusUnauthorized, ErrorAuthentication, false},
		{http.StatusForbidden, ErrorAuthentication, false},
		{http.StatusTooManyRequests, ErrorRateLimited, true},
		{http.StatusBadRequest, ErrorContractMismatch, false},
		{http.StatusUnprocessableEntity, ErrorContractMismatch, false},
		{http.StatusGatewayTimeout, ErrorTimeout, true},
		{http.StatusBadGateway, ErrorProviderOutage, true},
		{http.StatusTeapot, ErrorInternal, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := FromStatus(ProviderPositions, tt.status, []byte("boom"))
			assert.Equal(t, tt.category, GetCategory(err))
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}
}

func TestFromTransport(t *testing.T) {
	assert.Equal(t, ErrorTimeout, FromTransport(ProviderAggregator, fmt.Errorf("do: %w", context.DeadlineExceeded)).Category)
	assert.Equal(t, ErrorInternal, FromTransport(ProviderAggregator, context.Canceled).Category)
	assert.Equal(t, ErrorProviderOutage, FromTransport(ProviderAggregator, errors.New("connection refused")).Category)
}

func TestProviderErrorWrapping(t *testing.T) {
	underlying := errors.New("unexpected EOF")
	err := fmt.Errorf("fetching page: %w", BadData(ProviderPortCalls, underlying))

	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, ErrorBadData, GetCategory(err))
	assert.Equal(t, ErrorInternal, GetCategory(errors.New("plain")))
	assert.Contains(t, err.Error(), "provider port_calls [bad_data]")
}
