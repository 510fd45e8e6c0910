package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, clients and infrastructure
// layers return these (optionally wrapped) so services can translate them into
// domain errors or normal control flow.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrNoMoreData: a paged feed has nothing earlier than the requested cursor
// - ErrInvalidCursor: a paging cursor could not be interpreted
// - ErrAlreadyRunning: a check is already being executed elsewhere
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound       = errors.New("not found")
	ErrNoMoreData     = errors.New("no more data")
	ErrInvalidCursor  = errors.New("invalid cursor")
	ErrAlreadyRunning = errors.New("already running")
	ErrUnavailable    = errors.New("unavailable")
)
