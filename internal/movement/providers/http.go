package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// maxErrorBody caps how much of an error response is kept in the message.
const maxErrorBody = 512

// FromStatus maps a non-2xx HTTP status to a ProviderError.
func FromStatus(providerID string, status int, body []byte) *ProviderError {
	var category ErrorCategory
	switch {
	case status == http.StatusNotFound:
		category = ErrorNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = ErrorAuthentication
	case status == http.StatusTooManyRequests:
		category = ErrorRateLimited
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		category = ErrorContractMismatch
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		category = ErrorTimeout
	case status >= 500:
		category = ErrorProviderOutage
	default:
		category = ErrorInternal
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	pe := NewProviderError(category, providerID, fmt.Sprintf("unexpected status %d: %s", status, body), nil)
	pe.StatusCode = status
	return pe
}

// FromTransport maps an error from http.Client.Do or body reading.
func FromTransport(providerID string, err error) *ProviderError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewProviderError(ErrorTimeout, providerID, "request timed out", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return NewProviderError(ErrorTimeout, providerID, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return NewProviderError(ErrorInternal, providerID, "request cancelled", err)
	default:
		return NewProviderError(ErrorProviderOutage, providerID, "request failed", err)
	}
}

// BadData reports an undecodable or inconsistent response body.
func BadData(providerID string, err error) *ProviderError {
	return NewProviderError(ErrorBadData, providerID, "malformed response", err)
}

// ReadBody reads at most limit bytes of resp.Body.
func ReadBody(providerID string, resp *http.Response, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, FromTransport(providerID, err)
	}
	return body, nil
}
