package livechat

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDateFormat  = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrFetchFailed        = errors.New("fetch failed")
	ErrTransport          = errors.New("transport error")
	ErrPageLimit          = errors.New("page limit reached")
)

// FetchError reports a non-success response from the archive API.
// The body is kept verbatim for diagnostics and never parsed.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: status %d: %s", e.Status, e.Body)
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// TransportError wraps a network level failure reaching the API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
