package fetch

import "fmt"

// TransportError reports a failed network exchange: connection failure,
// timeout, or a non-2xx response. Transport errors are retryable.
type TransportError struct {
	URL    string
	Status int // non-zero when the server answered with a bad status
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("unexpected status %d fetching %s", e.Status, e.URL)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IntegrityError reports a digest mismatch on a completed download.
// Integrity errors are retryable by redownloading.
type IntegrityError struct {
	Path string
	Want string
	Got  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("digest mismatch for %s: expected %s, got %s", e.Path, e.Want, e.Got)
}
